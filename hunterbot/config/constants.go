package config

import "time"

// Application-wide constants organized by domain

// Game Mechanics Constants
const (
	// Inventory
	MaxInventoryCapacity = 25 // total records per user, across all chats

	// Spawn system
	DefaultSpawnEnabled  = true
	DefaultSpawnInterval = 100 // messages between spawns

	// Card stats
	TopOwnersLimit = 10
)

// Database and Performance Constants
const (
	// Timeouts
	DefaultQueryTimeout     = 30 * time.Second
	SearchTimeout           = 10 * time.Second
	StatsQueryTimeout       = 10 * time.Second
	CommandExecutionTimeout = 10 * time.Second

	// Cache settings
	CardCacheSize = 4096
)

// UI and Display Constants
const (
	// Pagination
	SeriesPerPage  = 4
	CardsPerSeries = 6

	// Colors
	ErrorColor   = 0xFF0000
	SuccessColor = 0x00FF00
	InfoColor    = 0x0099FF
	WarningColor = 0xFFAA00
	SpawnColor   = 0xF1C40F
)

// Search Constants
const (
	MaxSearchResults = 25
)
