package constants

import (
	"github.com/kerimovok/go-pkg-utils/config"
	"github.com/kerimovok/go-pkg-utils/validator"
)

var EnvValidationRules = []validator.ValidationRule{
	// Server validation
	{
		Variable: "PORT",
		Default:  "5000",
		Rule:     config.IsValidPort,
		Message:  "server port is required and must be a valid port number",
	},
	{
		Variable: "GO_ENV",
		Default:  "development",
		Rule:     func(v string) bool { return v == "development" || v == "production" },
		Message:  "GO_ENV must be either 'development' or 'production'",
	},

	// Database validation
	{
		Variable: "DB_HOST",
		Rule:     func(v string) bool { return v != "" },
		Message:  "database host is required",
	},
	{
		Variable: "DB_PORT",
		Default:  "5432",
		Rule:     config.IsValidPort,
		Message:  "database port is required and must be a valid port number",
	},
	{
		Variable: "DB_USER",
		Rule:     func(v string) bool { return v != "" },
		Message:  "database user is required",
	},
	{
		Variable: "DB_NAME",
		Default:  "fileshare",
		Rule:     func(v string) bool { return v != "" },
		Message:  "database name is required",
	},

	// Auth validation
	{
		Variable: "JWT_SECRET",
		Rule:     func(v string) bool { return len(v) >= 32 },
		Message:  "JWT secret is required and must be at least 32 characters",
	},

	// Share links and mail
	{
		Variable: "FRONTEND_URL",
		Default:  "http://localhost:3000",
		Rule:     func(v string) bool { return v != "" },
		Message:  "frontend URL is required to build share links",
	},
	{
		Variable: "SMTP_HOST",
		Default:  "localhost",
		Rule:     func(v string) bool { return v != "" },
		Message:  "SMTP host is required",
	},
	{
		Variable: "SMTP_PORT",
		Default:  "587",
		Rule:     config.IsValidPort,
		Message:  "SMTP port is required and must be a valid port number",
	},
	{
		Variable: "EMAIL_FROM",
		Default:  "no-reply@fileshare.local",
		Rule:     func(v string) bool { return v != "" },
		Message:  "sender address for share notifications is required",
	},
}
