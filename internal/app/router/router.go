// Package router assembles the gin engine and wires every feature's routes.
package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"elitecards_backend/internal/feature/appointment"
	authhandler "elitecards_backend/internal/feature/auth/transport/handler"
	"elitecards_backend/internal/feature/gallery"
	"elitecards_backend/internal/feature/inquiry"
	"elitecards_backend/internal/feature/mailing"
	passwordhandler "elitecards_backend/internal/feature/password/transport/handler"
	"elitecards_backend/internal/feature/product"
	"elitecards_backend/internal/feature/profile"
	"elitecards_backend/internal/feature/resource"
	"elitecards_backend/internal/feature/service"
	"elitecards_backend/internal/feature/student"
	"elitecards_backend/internal/feature/studentprofile"
	"elitecards_backend/internal/feature/testimonial"
	jwtmw "elitecards_backend/internal/platform/jwt"
)

// Deps carries everything the route tree needs.
type Deps struct {
	DB       *gorm.DB
	Auth     *authhandler.AuthHandler
	Password *passwordhandler.PasswordHandler
	Verifier jwtmw.Verifier
	Users    jwtmw.IdentityResolver
	Blobs    resource.BlobStore
	Mailer   interface {
		appointment.Mailer
		mailing.Mailer
	}
	CORSOrigins []string
}

// New builds the gin engine with the full route tree under /api.
func New(d Deps) *gin.Engine {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	if len(d.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = d.CORSOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := jwtmw.AuthRequired(d.Verifier, d.Users)
	admin := jwtmw.AdminRequired()

	apiGroup := r.Group("/api")

	authGroup := apiGroup.Group("/auth")
	{
		authGroup.POST("/signup", d.Auth.Signup)
		authGroup.POST("/login", d.Auth.Login)
		authGroup.GET("/me", auth, d.Auth.Me)
	}

	passwordGroup := apiGroup.Group("/password")
	{
		passwordGroup.POST("/forgot", d.Password.ForgotPassword)
		passwordGroup.POST("/verify-otp", d.Password.VerifyOTP)
		passwordGroup.POST("/reset", d.Password.ResetPassword)
		passwordGroup.POST("/resend-otp", d.Password.ResendOTP)
	}

	profile.Register(apiGroup.Group("/profile"), d.DB, d.Blobs, auth, admin)
	studentprofile.Register(apiGroup.Group("/student-profile"), d.DB, d.Blobs, auth, admin)
	student.Register(apiGroup, d.DB, d.Blobs, auth, admin)
	service.Register(apiGroup.Group("/services"), d.DB, auth, admin)
	gallery.Register(apiGroup.Group("/gallery"), d.DB, d.Blobs, auth, admin)
	product.Register(apiGroup.Group("/products"), d.DB, d.Blobs, auth, admin)
	testimonial.Register(apiGroup.Group("/testimonials"), d.DB, auth, admin)
	appointment.Register(apiGroup.Group("/appointments"), d.DB, d.Mailer, auth, admin)
	inquiry.Register(apiGroup.Group("/inquiries"), d.DB, auth, admin)
	mailing.Register(apiGroup.Group("/mail"), d.DB, d.Mailer, auth, admin)

	return r
}
