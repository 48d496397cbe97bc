package database

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ChatTurn is one completed chat exchange. Rows are append-only: turns are
// never updated or deleted, corrections require a new row.
type ChatTurn struct {
	Id uuid.UUID `gorm:"type:uuid;primaryKey"`

	SessionID string `gorm:"index;not null"`
	Message   string
	Response  string

	CreationTime time.Time `gorm:"index"`
}

// AnalysisTurn is one completed candlestick chart analysis. Same append-only
// lifecycle as ChatTurn.
type AnalysisTurn struct {
	Id uuid.UUID `gorm:"type:uuid;primaryKey"`

	SessionID string `gorm:"index;not null"`
	Filename  string
	Analysis  string

	// Patterns is an ordered list of detected pattern names, Indicators and
	// Recommendations are string maps. Indicators is currently always empty
	// but persisted so old and new rows share a shape.
	Patterns        datatypes.JSON
	Indicators      datatypes.JSON
	Recommendations datatypes.JSON

	// ObjectKey points at the archived copy of the uploaded image, empty if
	// archiving failed.
	ObjectKey string

	CreationTime time.Time `gorm:"index"`
}
