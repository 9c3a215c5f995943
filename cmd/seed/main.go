package main

import (
	"log"
	"os"

	"launchforge-be/internal/entity"
	"launchforge-be/internal/mapper"
	"launchforge-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// Seeds the master catalog: modules, features with their artifact
// contributions, and the starter template bundle. Idempotent per slug.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("🚀 Seeding LaunchForge Catalog\n")

	moduleIds := seedModules(db)
	seedFeatures(db, moduleIds)
	seedTemplates(db)

	color.Cyan("\n✅ Catalog seeding completed")
}

func seedModules(db *gorm.DB) map[string]uuid.UUID {
	color.Yellow("\n[1/3] Modules")

	modules := []*entity.Module{
		{Slug: "auth", Name: "Authentication", Category: "authentication", SortOrder: 1},
		{Slug: "monetization", Name: "Monetization", Category: "monetization", SortOrder: 2},
		{Slug: "storage", Name: "Storage", Category: "storage", SortOrder: 3},
		{Slug: "communication", Name: "Communication", Category: "communication", SortOrder: 4},
	}

	m := mapper.NewModuleMapper()
	ids := make(map[string]uuid.UUID)

	for _, mod := range modules {
		mdl := m.ToModel(mod)
		if err := db.Where("slug = ?", mod.Slug).FirstOrCreate(mdl).Error; err != nil {
			color.Red("Failed: module '%s': %v", mod.Slug, err)
			continue
		}
		ids[mod.Slug] = mdl.Id
		color.Green("Module: %s", mod.Slug)
	}
	return ids
}

func seedFeatures(db *gorm.DB, moduleIds map[string]uuid.UUID) {
	color.Yellow("\n[2/3] Features")

	features := []*entity.Feature{
		{
			Slug:        "auth.basic",
			Name:        "Basic Authentication",
			Description: "Email and password authentication with session handling",
			ModuleId:    moduleIds["auth"],
			IsActive:    true,
			SortOrder:   1,
			FileMappings: []entity.FileMapping{
				{Source: "_features/auth-basic/auth.service.ts", Destination: "src/auth/auth.service.ts"},
				{Source: "_features/auth-basic/auth.routes.ts", Destination: "src/auth/auth.routes.ts"},
			},
			SchemaMappings: []entity.SchemaMapping{
				{Model: "User", Source: "_features/auth-basic/user.prisma"},
				{Model: "Session", Source: "_features/auth-basic/session.prisma"},
			},
			EnvVars: []entity.EnvVarSpec{
				{Key: "SESSION_SECRET", Description: "Secret used to sign session cookies", Required: true},
			},
			PackageDependencies: []entity.PackageDependency{
				{Name: "argon2", Version: "^0.31.0"},
				{Name: "cookie", Version: "^0.6.0"},
			},
		},
		{
			Slug:        "social-auth.google",
			Name:        "Google Social Login",
			Description: "Sign in with Google on top of the basic auth flow",
			ModuleId:    moduleIds["auth"],
			IsActive:    true,
			SortOrder:   2,
			Tiers:       []string{"growth", "scale"},
			Requires:    []string{"auth.basic"},
			FileMappings: []entity.FileMapping{
				{Source: "_features/social-auth-google/google.provider.ts", Destination: "src/auth/providers/google.provider.ts"},
			},
			SchemaMappings: []entity.SchemaMapping{
				{Model: "OAuthAccount", Source: "_features/social-auth-google/oauth-account.prisma"},
			},
			EnvVars: []entity.EnvVarSpec{
				{Key: "GOOGLE_CLIENT_ID", Description: "Google OAuth client id", Required: true},
				{Key: "GOOGLE_CLIENT_SECRET", Description: "Google OAuth client secret", Required: true},
			},
			PackageDependencies: []entity.PackageDependency{
				{Name: "google-auth-library", Version: "^9.4.0"},
			},
		},
		{
			Slug:        "payments.stripe",
			Name:        "Stripe Payments",
			Description: "Subscription billing with Stripe Checkout and webhooks",
			ModuleId:    moduleIds["monetization"],
			IsActive:    true,
			SortOrder:   1,
			Requires:    []string{"auth.basic"},
			FileMappings: []entity.FileMapping{
				{Source: "_features/payments-stripe/stripe.service.ts", Destination: "src/payments/stripe.service.ts"},
				{Source: "_features/payments-stripe/webhook.routes.ts", Destination: "src/payments/webhook.routes.ts"},
			},
			SchemaMappings: []entity.SchemaMapping{
				{Model: "Subscription", Source: "_features/payments-stripe/subscription.prisma"},
			},
			EnvVars: []entity.EnvVarSpec{
				{Key: "STRIPE_SECRET_KEY", Description: "Stripe API secret key", Required: true},
				{Key: "STRIPE_WEBHOOK_SECRET", Description: "Stripe webhook signing secret", Required: true},
			},
			PackageDependencies: []entity.PackageDependency{
				{Name: "stripe", Version: "^14.10.0"},
			},
		},
		{
			Slug:        "file-upload.s3",
			Name:        "S3 File Uploads",
			Description: "Direct-to-S3 uploads with presigned URLs",
			ModuleId:    moduleIds["storage"],
			IsActive:    true,
			SortOrder:   1,
			Tiers:       []string{"growth", "scale"},
			FileMappings: []entity.FileMapping{
				{Source: "_features/file-upload-s3/upload.service.ts", Destination: "src/uploads/upload.service.ts"},
			},
			SchemaMappings: []entity.SchemaMapping{
				{Model: "FileObject", Source: "_features/file-upload-s3/file-object.prisma"},
			},
			EnvVars: []entity.EnvVarSpec{
				{Key: "AWS_REGION", Description: "AWS region for the upload bucket", Required: true, Default: "us-east-1"},
				{Key: "S3_BUCKET", Description: "Bucket receiving uploads", Required: true},
			},
			PackageDependencies: []entity.PackageDependency{
				{Name: "@aws-sdk/client-s3", Version: "^3.490.0"},
				{Name: "@aws-sdk/s3-request-presigner", Version: "^3.490.0"},
			},
		},
		{
			Slug:        "emails.transactional",
			Name:        "Transactional Emails",
			Description: "Templated transactional email delivery",
			ModuleId:    moduleIds["communication"],
			IsActive:    true,
			SortOrder:   1,
			EnvVars: []entity.EnvVarSpec{
				{Key: "SMTP_URL", Description: "SMTP connection string", Required: false, Default: "smtp://localhost:1025"},
			},
			PackageDependencies: []entity.PackageDependency{
				{Name: "nodemailer", Version: "^6.9.8"},
				{Name: "@types/nodemailer", Version: "^6.4.14", Dev: true},
			},
		},
	}

	m := mapper.NewFeatureMapper()
	for _, f := range features {
		mdl := m.ToModel(f)
		if err := db.Where("slug = ?", f.Slug).FirstOrCreate(mdl).Error; err != nil {
			color.Red("Failed: feature '%s': %v", f.Slug, err)
			continue
		}
		color.Green("Feature: %s", f.Slug)
	}
}

func seedTemplates(db *gorm.DB) {
	color.Yellow("\n[3/3] Templates")

	templates := []*entity.Template{
		{
			Slug:                 "saas-starter",
			Name:                 "SaaS Starter",
			Description:          "The default starter bundle with accounts wired in",
			IsActive:             true,
			IncludedFeatureSlugs: []string{"auth.basic"},
		},
		{
			Slug:                 "marketplace",
			Name:                 "Marketplace",
			Description:          "Two-sided marketplace bundle with payments and uploads",
			IsActive:             true,
			IncludedFeatureSlugs: []string{"auth.basic", "payments.stripe", "file-upload.s3"},
		},
	}

	m := mapper.NewTemplateMapper()
	for _, t := range templates {
		mdl := m.ToModel(t)
		if err := db.Where("slug = ?", t.Slug).FirstOrCreate(mdl).Error; err != nil {
			color.Red("Failed: template '%s': %v", t.Slug, err)
			continue
		}
		color.Green("Template: %s", t.Slug)
	}
}
