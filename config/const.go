package config

import (
	"strings"
	"time"
)

// AppVersion is the version of the application, set at build time with
// -ldflags "-X github.com/dixieflatline76/Backdrop/config.AppVersion=v1.2.3".
var AppVersion = "dev"

// AppName is the name of the application.
const AppName = "Backdrop"

// LogWinSubDir is the sub directory for the log files on windows.
var LogWinSubDir = AppName

// LogSubDir is the sub directory for the log files.
var LogSubDir = "." + strings.ToLower(AppName)

// LogExt is the extension for the log files.
var LogExt = ".log"

// Defaults applied when the settings file leaves a value empty.
const (
	SettingsFileName   = "settings.yaml"
	DefaultFeedURL     = "https://www.bing.com"
	DefaultMarketID    = "en-US"
	DefaultMarketName  = "United States"
	DefaultDisplayMode = "stretch"
	DefaultFileNaming  = "content"
	DefaultFontFamily  = "Go"
	DefaultFontSize    = 24
	DefaultSchedule    = "5 0 * * *"
	ProxyEnvVar        = "BACKDROP_PROXY"
	KeyringService     = "backdrop"
)

// HTTP client tuning shared by every network collaborator.
const (
	HTTPClientRequestTimeout        = 60 * time.Second
	HTTPClientDialerTimeout         = 30 * time.Second
	HTTPClientKeepAlive             = 30 * time.Second
	HTTPClientResponseHeaderTimeout = 30 * time.Second
	HTTPClientTLSHandshakeTimeout   = 15 * time.Second
)
