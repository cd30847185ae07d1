package auth

import (
	"database/sql"
	"strings"
	"time"
)

// listDelimiter separates entries in the stored preference columns.
const listDelimiter = "|"

// userRecord is the flat storage row shape for a User.
type userRecord struct {
	ID                 string
	Email              string
	FirstName          string
	LastName           string
	Age                sql.NullInt64
	Gender             sql.NullString
	HeightCm           sql.NullFloat64
	WeightKg           sql.NullFloat64
	ActivityLevel      sql.NullString
	DietaryPreferences sql.NullString
	HealthGoals        sql.NullString
	CreatedAt          time.Time
}

// toRecord converts a domain user into its storage row. Pure.
func toRecord(u User) userRecord {
	rec := userRecord{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt.UTC(),
	}
	if p := u.Profile; p != nil {
		if p.Age != nil {
			rec.Age = sql.NullInt64{Int64: int64(*p.Age), Valid: true}
		}
		rec.Gender = encodeOptionalText(p.Gender)
		if p.HeightCm != nil {
			rec.HeightCm = sql.NullFloat64{Float64: *p.HeightCm, Valid: true}
		}
		if p.WeightKg != nil {
			rec.WeightKg = sql.NullFloat64{Float64: *p.WeightKg, Valid: true}
		}
		rec.ActivityLevel = encodeOptionalText(p.ActivityLevel)
		rec.DietaryPreferences = encodeList(p.DietaryPreferences)
		rec.HealthGoals = encodeList(p.HealthGoals)
	}
	return rec
}

// toDomain converts a storage row back into a domain user. Pure. A row with
// no profile attributes yields a nil Profile.
func toDomain(rec userRecord) User {
	u := User{
		ID:        rec.ID,
		Email:     rec.Email,
		FirstName: rec.FirstName,
		LastName:  rec.LastName,
		CreatedAt: rec.CreatedAt.UTC(),
	}

	p := Profile{
		Gender:             rec.Gender.String,
		ActivityLevel:      rec.ActivityLevel.String,
		DietaryPreferences: decodeList(rec.DietaryPreferences),
		HealthGoals:        decodeList(rec.HealthGoals),
	}
	hasProfile := rec.Gender.Valid || rec.ActivityLevel.Valid ||
		len(p.DietaryPreferences) > 0 || len(p.HealthGoals) > 0
	if rec.Age.Valid {
		age := int(rec.Age.Int64)
		p.Age = &age
		hasProfile = true
	}
	if rec.HeightCm.Valid {
		h := rec.HeightCm.Float64
		p.HeightCm = &h
		hasProfile = true
	}
	if rec.WeightKg.Valid {
		w := rec.WeightKg.Float64
		p.WeightKg = &w
		hasProfile = true
	}
	if hasProfile {
		u.Profile = &p
	}
	return u
}

func encodeOptionalText(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func encodeList(items []string) sql.NullString {
	kept := make([]string, 0, len(items))
	for _, item := range items {
		if item != "" {
			kept = append(kept, item)
		}
	}
	if len(kept) == 0 {
		return sql.NullString{}
	}
	return sql.NullString{String: strings.Join(kept, listDelimiter), Valid: true}
}

func decodeList(stored sql.NullString) []string {
	if !stored.Valid || stored.String == "" {
		return nil
	}
	parts := strings.Split(stored.String, listDelimiter)
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			items = append(items, p)
		}
	}
	if len(items) == 0 {
		return nil
	}
	return items
}
