package handler

import (
	"context"
	"time"

	"main/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// HealthHandler reports database reachability and host load.
func HealthHandler(c *gin.Context) {
	dbStatus := "up"
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if utils.MongoClient == nil {
		dbStatus = "uninitialized"
	} else if err := utils.MongoClient.Ping(ctx, readpref.Primary()); err != nil {
		dbStatus = "down"
	}

	utils.Success(c, gin.H{
		"database":     dbStatus,
		"cpu_usage":    utils.GetCPUUsage(),
		"memory_usage": utils.GetMemoryUsage(),
	})
}
