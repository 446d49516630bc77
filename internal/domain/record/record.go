package record

import "fmt"

// Record is one directory entry (immutable value object).
// Every field except the ID may be empty.
type Record struct {
	id        string
	name      string
	email     string
	major     string
	stage     string
	level     string
	avatarURL string
	createdAt string
}

// Fields holds the optional descriptive attributes of a Record.
type Fields struct {
	Name      string
	Email     string
	Major     string
	Stage     string
	Level     string
	AvatarURL string
	CreatedAt string
}

// New validates and creates a Record.
func New(id string, f Fields) (Record, error) {
	if id == "" {
		return Record{}, fmt.Errorf("record ID is required")
	}
	return Reconstruct(id, f), nil
}

// Reconstruct creates a Record without validation (cache hydration).
func Reconstruct(id string, f Fields) Record {
	return Record{
		id:        id,
		name:      f.Name,
		email:     f.Email,
		major:     f.Major,
		stage:     f.Stage,
		level:     f.Level,
		avatarURL: f.AvatarURL,
		createdAt: f.CreatedAt,
	}
}

// ID returns the opaque record identifier.
func (r *Record) ID() string { return r.id }

// Name returns the display name.
func (r *Record) Name() string { return r.name }

// Email returns the email address.
func (r *Record) Email() string { return r.email }

// Major returns the field of study.
func (r *Record) Major() string { return r.major }

// Stage returns the study stage.
func (r *Record) Stage() string { return r.stage }

// Level returns the study level.
func (r *Record) Level() string { return r.level }

// AvatarURL returns the avatar image URL.
func (r *Record) AvatarURL() string { return r.avatarURL }

// CreatedAt returns the raw creation timestamp as sent by the source.
func (r *Record) CreatedAt() string { return r.createdAt }

// Fields returns the descriptive attributes.
func (r *Record) Fields() Fields {
	return Fields{
		Name:      r.name,
		Email:     r.email,
		Major:     r.major,
		Stage:     r.stage,
		Level:     r.level,
		AvatarURL: r.avatarURL,
		CreatedAt: r.createdAt,
	}
}
