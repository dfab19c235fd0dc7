package app

import (
	"mxtool/internal/config"
	"mxtool/internal/domain"
	"mxtool/internal/mx"
	"mxtool/internal/services/recovery"
)

// App is the dependency graph shared by every subcommand.
type App struct {
	Cfg      *config.Config
	Client   *mx.Client
	Store    domain.BackupKeyStore
	Recovery *recovery.Service
}
