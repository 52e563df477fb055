// Country-rank-o-meter serves temporal multi-criteria country rankings over
// HTTP. Each run scores every entity per period with CRITIC-weighted TOPSIS,
// blends the periods with DARIA variability and direction, and exposes the
// final ranking through a cached leaderboard.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ZanzyTHEbar/country-rank-o-meter/internal/analysis"
	"github.com/ZanzyTHEbar/country-rank-o-meter/internal/cache"
	"github.com/ZanzyTHEbar/country-rank-o-meter/internal/config"
	"github.com/ZanzyTHEbar/country-rank-o-meter/internal/database"
	"github.com/ZanzyTHEbar/country-rank-o-meter/internal/dataset"
	apperrors "github.com/ZanzyTHEbar/country-rank-o-meter/internal/errors"
	"github.com/ZanzyTHEbar/country-rank-o-meter/internal/leaderboard"
	"github.com/ZanzyTHEbar/country-rank-o-meter/internal/monitoring"
	"github.com/ZanzyTHEbar/country-rank-o-meter/internal/ratelimit"
	"github.com/ZanzyTHEbar/country-rank-o-meter/internal/report"
	"github.com/ZanzyTHEbar/country-rank-o-meter/internal/types"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	appLogger := monitoring.NewLogger()
	slog.SetDefault(appLogger.Logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err, "path", *configPath)
		os.Exit(1)
	}

	db, err := database.NewDB(cfg.Database.Dir)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	repo := database.NewRepository(db)

	leaderboardService := leaderboard.NewService(repo, cfg.Leaderboard.CacheTTL.Std())
	leaderboardService.StartAutoRefresh(cfg.Leaderboard.RefreshInterval.Std())

	analyzer := analysis.NewAnalyzer()

	var reportWriter *report.Writer
	if cfg.Report.Enabled {
		reportWriter, err = report.NewWriter(cfg.Report.Dir)
		if err != nil {
			slog.Error("Failed to initialize report writer", "error", err, "dir", cfg.Report.Dir)
			os.Exit(1)
		}
	}

	appMetrics := monitoring.NewMetrics()

	limiter := ratelimit.NewRateLimiter(cfg.RateLimit.RequestsPerMin, cfg.RateLimit.Burst)
	defer limiter.Stop()

	appCache := cache.NewCache(cfg.Cache.TTL.Std())

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}))
	r.Use(monitoring.Middleware(appMetrics, appLogger))
	r.Use(apperrors.ErrorHandler())
	r.Use(apperrors.RecoveryHandler())
	r.Use(ratelimit.Middleware(limiter, appMetrics))
	r.Use(appCache.Middleware(appMetrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	r.GET("/metrics", func(c *gin.Context) {
		appMetrics.Handler().ServeHTTP(c.Writer, c.Request)
	})

	r.GET("/cache/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"http_cache_size":   appCache.Size(),
			"leaderboard_cache": leaderboardService.CacheStats(),
		})
	})

	r.POST("/runs", func(c *gin.Context) {
		var req types.RunRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.Error(apperrors.NewValidationError("invalid request body", err))
				return
			}
		}

		ds, appErr := resolveDataset(&req, &cfg, appLogger)
		if appErr != nil {
			c.Error(appErr)
			return
		}

		result, err := analyzer.Run(ds)
		if err != nil {
			appMetrics.RunsTotal.WithLabelValues("error").Inc()
			c.Error(apperrors.NewValidationError("analysis failed", err))
			return
		}

		if err := repo.SaveRun(result); err != nil {
			appMetrics.RunsTotal.WithLabelValues("error").Inc()
			c.Error(apperrors.NewInternalError("failed to persist run", err))
			return
		}

		if reportWriter != nil {
			if err := reportWriter.WriteAll(result); err != nil {
				// Persisted runs stay valid even when CSV export fails.
				slog.Error("Failed to export run reports", "error", err, "run_id", result.ID)
			}
		}

		leaderboardService.Invalidate()
		appCache.Clear()

		appMetrics.RunsTotal.WithLabelValues("success").Inc()
		appMetrics.RunDuration.Observe(float64(result.DurationMs) / 1000.0)
		appMetrics.RunEntities.Set(float64(len(result.Entities)))
		appMetrics.RunPeriods.Set(float64(len(result.Periods)))
		appLogger.RunLogger(result.ID, len(result.Entities), len(result.Criteria), len(result.Periods),
			time.Duration(result.DurationMs)*time.Millisecond)

		c.JSON(http.StatusCreated, result)
	})

	r.GET("/runs", func(c *gin.Context) {
		limit := parseLimit(c.DefaultQuery("limit", "20"), 20, 100)
		runs, err := repo.ListRuns(limit)
		if err != nil {
			c.Error(apperrors.NewInternalError("failed to list runs", err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"runs": runs, "total": len(runs)})
	})

	r.GET("/runs/:id", func(c *gin.Context) {
		result, err := repo.GetRun(c.Param("id"))
		if err != nil {
			if database.IsNotFound(err) {
				c.Error(apperrors.NewNotFoundError("run not found"))
				return
			}
			c.Error(apperrors.NewInternalError("failed to load run", err))
			return
		}
		c.JSON(http.StatusOK, result)
	})

	r.GET("/runs/:id/correlations", func(c *gin.Context) {
		result, err := repo.GetRun(c.Param("id"))
		if err != nil {
			if database.IsNotFound(err) {
				c.Error(apperrors.NewNotFoundError("run not found"))
				return
			}
			c.Error(apperrors.NewInternalError("failed to load run", err))
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"run_id":            result.ID,
			"weighted_spearman": result.WeightedSpearman,
			"spearman":          result.Spearman,
		})
	})

	r.GET("/leaderboard", func(c *gin.Context) {
		limit := parseLimit(c.DefaultQuery("limit", "50"), 50, 500)
		appMetrics.LeaderboardReads.Inc()

		resp, err := leaderboardService.GetLeaderboard(limit)
		if err != nil {
			if database.IsNotFound(err) {
				c.Error(apperrors.NewNotFoundError("no completed runs yet"))
				return
			}
			c.Error(apperrors.NewInternalError("failed to load leaderboard", err))
			return
		}
		c.JSON(http.StatusOK, resp)
	})

	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.Server.Port),
		Handler: r,
	}

	go func() {
		slog.Info("Starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Std())
	defer cancel()

	leaderboardService.Stop()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited")
}

// resolveDataset picks the dataset source for a run request: inline payload,
// request-supplied directory, or the configured default directory.
func resolveDataset(req *types.RunRequest, cfg *config.Config, logger *monitoring.Logger) (*dataset.Dataset, *apperrors.AppError) {
	if req.Inline != nil {
		ds, err := dataset.FromInline(req.Inline)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid inline dataset", err)
		}
		return ds, nil
	}

	dir := cfg.Dataset.Dir
	if req.DatasetDir != "" {
		dir = req.DatasetDir
	}

	ds, err := dataset.Load(dir, cfg.Dataset.Periods, cfg.Dataset.Directions)
	if err != nil {
		return nil, apperrors.NewDatasetError("failed to load dataset from "+dir, err)
	}
	logger.DatasetLogger(dir, len(ds.Entities), len(ds.Criteria), len(ds.Periods))
	return ds, nil
}

func parseLimit(raw string, def, max int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	if n > max {
		return max
	}
	return n
}
