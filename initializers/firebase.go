package initializers

import (
	"context"
	"log"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

var (
	FirebaseApp     *firebase.App
	FirestoreClient *firestore.Client
	AuthClient      *auth.Client
)

// InitFirebase wires the Firebase Admin SDK: Firestore is the remote document
// store, Auth verifies client ID tokens. Messaging is picked up later by the
// push service from the same app handle.
func InitFirebase() {
	ctx := context.Background()

	var conf *firebase.Config
	if Cfg.Firestore_Project_ID != "" {
		conf = &firebase.Config{ProjectID: Cfg.Firestore_Project_ID}
	}

	var err error
	if Cfg.Firebase_Service_Account != "" {
		opt := option.WithCredentialsFile(Cfg.Firebase_Service_Account)
		FirebaseApp, err = firebase.NewApp(ctx, conf, opt)
	} else {
		// Application Default Credentials
		FirebaseApp, err = firebase.NewApp(ctx, conf)
	}
	if err != nil {
		log.Fatal("Failed to initialize Firebase app: ", err)
	}

	FirestoreClient, err = FirebaseApp.Firestore(ctx)
	if err != nil {
		log.Fatal("Failed to create Firestore client: ", err)
	}

	AuthClient, err = FirebaseApp.Auth(ctx)
	if err != nil {
		log.Fatal("Failed to create Firebase auth client: ", err)
	}

	log.Println("Firebase initialized")
}
