package main

import (
	"log"
	"strings"
	"time"

	"attendance/auth"
	"attendance/config"
	"attendance/db"
	"attendance/faces"
	"attendance/handlers"
	"attendance/models"
	"attendance/recognition"
	"attendance/storage"
	"attendance/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	sessionCookieName     = "token"
	sessionExpirationTime = 30 * 86400 // 30 days
)

func main() {
	db.Init()
	models.Init()
	storage.Init()

	recognizer, err := faces.NewRecognizer(config.FACE_MODELS_DIR, config.FACE_DETECT_CNN)
	if err != nil {
		log.Fatalf("Cannot initialize face recognizer: %v", err)
	}
	defer recognizer.Close()

	pipeline := recognition.NewPipeline(recognizer, recognition.DBStore{}, recognition.Config{
		Threshold:     config.FACE_MATCH_THRESHOLD,
		MaxFaces:      config.MAX_FACES_PER_FRAME,
		DetectTimeout: time.Duration(config.DETECT_TIMEOUT_SECONDS) * time.Second,
		Upscale:       config.DETECT_UPSCALE,
	})
	handlers.Init(recognizer, pipeline)

	if !config.DEBUG_MODE {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "PUT", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))

	sessionKey := config.SESSION_KEY
	if sessionKey == "" {
		sessionKey = utils.RandSalt(32)
	}
	cookieStore := gormsessions.NewStore(db.Instance, true, []byte(sessionKey))
	cookieStore.Options(sessions.Options{MaxAge: sessionExpirationTime})
	router.Use(sessions.Sessions(sessionCookieName, cookieStore))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/students/photo"})))
	}

	// Custom Auth Router
	authRouter := &auth.Router{Base: router}
	// User handlers
	router.POST("/user/login", handlers.UserLogin)
	authRouter.POST("/user/logout", handlers.UserLogout)
	authRouter.POST("/user/save", handlers.UserSave, models.PermissionAdmin)
	authRouter.GET("/user/status", handlers.UserGetStatus)
	authRouter.GET("/user/list", handlers.UserList, models.PermissionAdmin)
	// Roster handlers
	authRouter.POST("/api/register", handlers.StudentRegister, models.PermissionManageRoster)
	authRouter.POST("/api/reregister", handlers.StudentReRegister, models.PermissionManageRoster)
	authRouter.GET("/api/students", handlers.StudentList)
	authRouter.GET("/api/students/photo", handlers.StudentPhoto)
	// Recognition + attendance
	authRouter.POST("/api/recognize", handlers.RecognizeFrame, models.PermissionRecordAttendance)
	authRouter.GET("/api/attendance", handlers.AttendanceList)
	authRouter.GET("/ws/attendance", handlers.AttendanceFeed)
	// Observability
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Fatalf("Server stopped: %v", err)
}
