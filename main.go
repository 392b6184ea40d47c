package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/iPrayUST/controllers"
	"github.com/iPrayUST/initializers"
	"github.com/iPrayUST/middlewares"
	"github.com/iPrayUST/services"
)

func init() {
	initializers.LoadEnv()
	initializers.ConnectDB()
	initializers.InitFirebase()
	services.InitPushNotificationService()
	services.InitEmailService()
}

func main() {
	cfg := initializers.Cfg

	kv := services.NewKVStore(initializers.DB)
	cache := services.NewCacheStore(kv, cfg.App_Version, cfg.Cache_Expiry)
	remote := services.NewFirestoreDataSource(initializers.FirestoreClient)
	sync := services.NewSyncCoordinator(cache, remote, kv, cfg.Remote_Timeout)
	engine := services.NewRecommendationEngine(nil)
	devices := services.NewDeviceStateService(kv)

	reminders := services.NewReminderService(remote, kv, cfg.Evening_Reminder_Time, cfg.Reminder_Check_Interval)
	reminderCtx, stopReminders := context.WithCancel(context.Background())
	defer stopReminders()
	go reminders.Run(reminderCtx)

	router := gin.Default()

	getKey := func(c *gin.Context) string {
		if gin.Mode() == gin.DebugMode {
			return c.FullPath()
		}
		return c.ClientIP()
	}

	router.GET("/ping", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.Ping)
	router.POST("/auth/session", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.CreateSession(initializers.AuthClient, sync))

	// Device-scoped state works without a signed-in user.
	device := router.Group("/device")
	device.Use(middlewares.RateLimitMiddleware(10, 10, getKey))
	{
		device.GET("/state", controllers.GetDeviceState(devices))
		device.PUT("/state/:flag", controllers.SetDeviceFlag(devices))
		device.POST("/tabs/:tab", controllers.MarkTabVisited(devices))
		device.POST("/bookmarks/:prayer_id", controllers.AddDeviceBookmark(devices))
		device.DELETE("/bookmarks/:prayer_id", controllers.RemoveDeviceBookmark(devices))
		device.POST("/prayers/:prayer_id/record", controllers.RecordDevicePrayer(devices))
	}

	auth := router.Group("/")
	auth.Use(middlewares.CheckAuth(sync))
	auth.Use(middlewares.RateLimitMiddleware(10, 10, getKey))
	{
		// catalog routes
		auth.GET("/prayers", controllers.GetPrayers(sync))
		auth.GET("/prayers/suggested", controllers.GetSuggestedPrayers(sync))
		auth.GET("/prayers/:prayer_id", controllers.GetPrayer(sync))
		auth.POST("/prayers/:prayer_id/stats", controllers.RecordPrayer(remote))
		auth.GET("/categories", controllers.GetCategories(sync, remote, cfg.Remote_Timeout))

		// recommendation routes
		auth.GET("/recommendations/prayer-of-the-day", controllers.GetPrayerOfTheDay(sync, engine, remote))
		auth.GET("/recommendations/suggested", controllers.GetSuggestedForNow(sync, engine))

		auth.GET("/verse-of-the-day", controllers.GetVerseOfTheDay(remote))

		// user routes
		auth.GET("/users/me", controllers.GetUserProfile())
		auth.PATCH("/users/me/preferences", controllers.UpdateUserPreferences(remote, sync))
		auth.GET("/users/me/bookmarks", controllers.GetBookmarks())
		auth.POST("/users/me/bookmarks/:prayer_id", controllers.AddBookmark(remote, sync))
		auth.DELETE("/users/me/bookmarks/:prayer_id", controllers.RemoveBookmark(remote, sync))
		auth.GET("/users/me/recent", controllers.GetRecentPrayers(remote))
		auth.POST("/users/me/recent/:prayer_id", controllers.AddRecentPrayer(remote))
		auth.GET("/users/me/stats", controllers.GetPrayerStats(remote))

		// sync routes
		auth.GET("/sync/status", controllers.GetSyncStatus(sync))
		auth.POST("/sync/refresh", controllers.ForceRefresh(sync))

		// admin only routes
		admin := auth.Group("/")
		admin.Use(middlewares.CheckAdmin)
		admin.Use(middlewares.RateLimitMiddleware(5, 5, getKey))
		{
			admin.POST("/notifications/send", controllers.SendPushNotification(remote))
		}
	}

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
