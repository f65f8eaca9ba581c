package student

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"elitecards_backend/internal/feature/auth/domain/entity"
	"elitecards_backend/internal/feature/resource"
)

// Register wires every student sub-resource under its own route group.
func Register(apiGroup *gin.RouterGroup, db *gorm.DB, blobs resource.BlobStore, auth, admin gin.HandlerFunc) {
	registerSkills(apiGroup.Group("/student-skills"), db, auth, admin)
	registerEducations(apiGroup.Group("/student-educations"), db, auth, admin)
	registerExperiences(apiGroup.Group("/student-experiences"), db, auth, admin)
	registerProjects(apiGroup.Group("/student-projects"), db, auth, admin)
	registerAchievements(apiGroup.Group("/student-achievements"), db, auth, admin)
	registerAwards(apiGroup.Group("/student-awards"), db, blobs, auth, admin)
}

func registerSkills(rg *gin.RouterGroup, db *gorm.DB, auth, admin gin.HandlerFunc) {
	type payload struct {
		Name  string `json:"name" binding:"required"`
		Level int    `json:"level" binding:"required,min=0,max=100"`
	}
	type patch struct {
		Name  *string `json:"name"`
		Level *int    `json:"level"`
	}
	h := resource.NewHandler(resource.Config[Skill]{
		Singular: "skill",
		Plural:   "skills",
		Repo:     resource.NewRepository[Skill](db),
		GateRole: entity.RoleStudent,
		BindCreate: func(c *gin.Context, ownerID uint) (*Skill, error) {
			var req payload
			if err := c.ShouldBindJSON(&req); err != nil {
				return nil, err
			}
			return &Skill{UserID: ownerID, Name: req.Name, Level: req.Level}, nil
		},
		ApplyUpdate: func(c *gin.Context, e *Skill) error {
			var req patch
			if err := c.ShouldBindJSON(&req); err != nil {
				return err
			}
			if req.Name != nil {
				e.Name = *req.Name
			}
			if req.Level != nil {
				e.Level = *req.Level
			}
			return nil
		},
	})
	resource.RegisterStudent(rg, h, auth, admin)
}

func registerEducations(rg *gin.RouterGroup, db *gorm.DB, auth, admin gin.HandlerFunc) {
	type payload struct {
		Degree      string     `json:"degree" binding:"required"`
		Major       string     `json:"major"`
		Institution string     `json:"institution" binding:"required"`
		StartDate   time.Time  `json:"startDate" binding:"required"`
		EndDate     *time.Time `json:"endDate"`
		GPA         float64    `json:"gpa"`
		Description string     `json:"description"`
	}
	type patch struct {
		Degree      *string    `json:"degree"`
		Major       *string    `json:"major"`
		Institution *string    `json:"institution"`
		StartDate   *time.Time `json:"startDate"`
		EndDate     *time.Time `json:"endDate"`
		GPA         *float64   `json:"gpa"`
		Description *string    `json:"description"`
	}
	h := resource.NewHandler(resource.Config[Education]{
		Singular: "education",
		Plural:   "educations",
		Repo:     resource.NewRepository[Education](db),
		GateRole: entity.RoleStudent,
		BindCreate: func(c *gin.Context, ownerID uint) (*Education, error) {
			var req payload
			if err := c.ShouldBindJSON(&req); err != nil {
				return nil, err
			}
			return &Education{
				UserID:      ownerID,
				Degree:      req.Degree,
				Major:       req.Major,
				Institution: req.Institution,
				StartDate:   req.StartDate,
				EndDate:     req.EndDate,
				GPA:         req.GPA,
				Description: req.Description,
			}, nil
		},
		ApplyUpdate: func(c *gin.Context, e *Education) error {
			var req patch
			if err := c.ShouldBindJSON(&req); err != nil {
				return err
			}
			if req.Degree != nil {
				e.Degree = *req.Degree
			}
			if req.Major != nil {
				e.Major = *req.Major
			}
			if req.Institution != nil {
				e.Institution = *req.Institution
			}
			if req.StartDate != nil {
				e.StartDate = *req.StartDate
			}
			if req.EndDate != nil {
				e.EndDate = req.EndDate
			}
			if req.GPA != nil {
				e.GPA = *req.GPA
			}
			if req.Description != nil {
				e.Description = *req.Description
			}
			return nil
		},
	})
	resource.RegisterStudent(rg, h, auth, admin)
}

func registerExperiences(rg *gin.RouterGroup, db *gorm.DB, auth, admin gin.HandlerFunc) {
	type payload struct {
		Role        string     `json:"role" binding:"required"`
		Company     string     `json:"company" binding:"required"`
		StartDate   time.Time  `json:"startDate" binding:"required"`
		EndDate     *time.Time `json:"endDate"`
		Description string     `json:"description"`
		IsCurrent   bool       `json:"isCurrent"`
	}
	type patch struct {
		Role        *string    `json:"role"`
		Company     *string    `json:"company"`
		StartDate   *time.Time `json:"startDate"`
		EndDate     *time.Time `json:"endDate"`
		Description *string    `json:"description"`
		IsCurrent   *bool      `json:"isCurrent"`
	}
	h := resource.NewHandler(resource.Config[Experience]{
		Singular: "experience",
		Plural:   "experiences",
		Repo:     resource.NewRepository[Experience](db),
		GateRole: entity.RoleStudent,
		BindCreate: func(c *gin.Context, ownerID uint) (*Experience, error) {
			var req payload
			if err := c.ShouldBindJSON(&req); err != nil {
				return nil, err
			}
			return &Experience{
				UserID:      ownerID,
				Role:        req.Role,
				Company:     req.Company,
				StartDate:   req.StartDate,
				EndDate:     req.EndDate,
				Description: req.Description,
				IsCurrent:   req.IsCurrent,
			}, nil
		},
		ApplyUpdate: func(c *gin.Context, e *Experience) error {
			var req patch
			if err := c.ShouldBindJSON(&req); err != nil {
				return err
			}
			if req.Role != nil {
				e.Role = *req.Role
			}
			if req.Company != nil {
				e.Company = *req.Company
			}
			if req.StartDate != nil {
				e.StartDate = *req.StartDate
			}
			if req.EndDate != nil {
				e.EndDate = req.EndDate
			}
			if req.Description != nil {
				e.Description = *req.Description
			}
			if req.IsCurrent != nil {
				e.IsCurrent = *req.IsCurrent
			}
			return nil
		},
	})
	resource.RegisterStudent(rg, h, auth, admin)
}

func registerProjects(rg *gin.RouterGroup, db *gorm.DB, auth, admin gin.HandlerFunc) {
	type payload struct {
		Title        string `json:"title" binding:"required"`
		Description  string `json:"description"`
		Technologies string `json:"technologies"`
		Link         string `json:"link"`
		Category     string `json:"category"`
		ImageURL     string `json:"imageUrl"`
	}
	type patch struct {
		Title        *string `json:"title"`
		Description  *string `json:"description"`
		Technologies *string `json:"technologies"`
		Link         *string `json:"link"`
		Category     *string `json:"category"`
		ImageURL     *string `json:"imageUrl"`
	}
	h := resource.NewHandler(resource.Config[Project]{
		Singular: "project",
		Plural:   "projects",
		Repo:     resource.NewRepository[Project](db),
		GateRole: entity.RoleStudent,
		BindCreate: func(c *gin.Context, ownerID uint) (*Project, error) {
			var req payload
			if err := c.ShouldBindJSON(&req); err != nil {
				return nil, err
			}
			return &Project{
				UserID:       ownerID,
				Title:        req.Title,
				Description:  req.Description,
				Technologies: req.Technologies,
				Link:         req.Link,
				Category:     req.Category,
				ImageURL:     req.ImageURL,
			}, nil
		},
		ApplyUpdate: func(c *gin.Context, e *Project) error {
			var req patch
			if err := c.ShouldBindJSON(&req); err != nil {
				return err
			}
			if req.Title != nil {
				e.Title = *req.Title
			}
			if req.Description != nil {
				e.Description = *req.Description
			}
			if req.Technologies != nil {
				e.Technologies = *req.Technologies
			}
			if req.Link != nil {
				e.Link = *req.Link
			}
			if req.Category != nil {
				e.Category = *req.Category
			}
			if req.ImageURL != nil {
				e.ImageURL = *req.ImageURL
			}
			return nil
		},
	})
	resource.RegisterStandard(rg, h, auth, admin)
}

func registerAchievements(rg *gin.RouterGroup, db *gorm.DB, auth, admin gin.HandlerFunc) {
	type payload struct {
		Title          string     `json:"title" binding:"required"`
		Description    string     `json:"description"`
		Date           *time.Time `json:"date"`
		CertificateURL string     `json:"certificateUrl"`
	}
	type patch struct {
		Title          *string    `json:"title"`
		Description    *string    `json:"description"`
		Date           *time.Time `json:"date"`
		CertificateURL *string    `json:"certificateUrl"`
	}
	h := resource.NewHandler(resource.Config[Achievement]{
		Singular: "achievement",
		Plural:   "achievements",
		Repo:     resource.NewRepository[Achievement](db),
		GateRole: entity.RoleStudent,
		BindCreate: func(c *gin.Context, ownerID uint) (*Achievement, error) {
			var req payload
			if err := c.ShouldBindJSON(&req); err != nil {
				return nil, err
			}
			return &Achievement{
				UserID:         ownerID,
				Title:          req.Title,
				Description:    req.Description,
				Date:           req.Date,
				CertificateURL: req.CertificateURL,
			}, nil
		},
		ApplyUpdate: func(c *gin.Context, e *Achievement) error {
			var req patch
			if err := c.ShouldBindJSON(&req); err != nil {
				return err
			}
			if req.Title != nil {
				e.Title = *req.Title
			}
			if req.Description != nil {
				e.Description = *req.Description
			}
			if req.Date != nil {
				e.Date = req.Date
			}
			if req.CertificateURL != nil {
				e.CertificateURL = *req.CertificateURL
			}
			return nil
		},
	})
	resource.RegisterStandard(rg, h, auth, admin)
}
