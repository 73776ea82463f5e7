package usecasecontract

import (
	"time"
)

// IAppLogger is the logging surface injected into usecases and handlers.
type IAppLogger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
}

// IConfigProvider exposes application configuration to the usecase layer.
type IConfigProvider interface {
	GetAppBaseURL() string
	GetRefreshTokenExpiry() time.Duration
	GetPasswordResetTokenExpiry() time.Duration
	GetAIServiceAPIKey() string
	GetUploadDir() string
}

// IValidator validates raw input values.
type IValidator interface {
	ValidateEmail(email string) error
	ValidatePasswordStrength(password string) error
}
