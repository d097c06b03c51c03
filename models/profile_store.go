package models

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// ProfileModel persists structured profiles keyed by user id. The core
// pipeline never touches SQL directly; it hands sanitized profiles here.
type ProfileModel struct {
	DB *sql.DB
}

func NewProfileModel(db *sql.DB) *ProfileModel {
	return &ProfileModel{DB: db}
}

// Replace swaps the stored profile for the user atomically. The profile
// is composed of several sub-collections; replacing them in one
// transaction keeps reads consistent.
func (m *ProfileModel) Replace(userID int, profile StructuredProfile) error {
	tx, err := m.DB.Begin()
	if err != nil {
		return fmt.Errorf("begin profile replace: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	_, err = tx.Exec(`
		INSERT INTO profiles (user_id, name, bio, portfolio, linkedin, github, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name, bio = EXCLUDED.bio, portfolio = EXCLUDED.portfolio,
			linkedin = EXCLUDED.linkedin, github = EXCLUDED.github, updated_at = EXCLUDED.updated_at
	`, userID, profile.Personal.Name, profile.Personal.Bio, profile.Personal.Portfolio,
		profile.Personal.LinkedIn, profile.Personal.GitHub, now)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}

	for _, table := range []string{"experiences", "education", "projects", "skills", "certifications"} {
		if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE user_id = $1", table), userID); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, exp := range profile.Experiences {
		_, err := tx.Exec(`
			INSERT INTO experiences (user_id, title, company, description, start_date, end_date, current, location)
			VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8)
		`, userID, exp.Title, exp.Company, exp.Description, exp.StartDate, exp.EndDate, exp.Current, exp.Location)
		if err != nil {
			return fmt.Errorf("insert experience: %w", err)
		}
	}

	for _, edu := range profile.Education {
		_, err := tx.Exec(`
			INSERT INTO education (user_id, institution, degree, field, start_date, end_date, current)
			VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)
		`, userID, edu.Institution, edu.Degree, edu.Field, edu.StartDate, edu.EndDate, edu.Current)
		if err != nil {
			return fmt.Errorf("insert education: %w", err)
		}
	}

	for _, proj := range profile.Projects {
		_, err := tx.Exec(`
			INSERT INTO projects (user_id, title, description, start_date, end_date, url, technologies)
			VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)
		`, userID, proj.Title, proj.Description, proj.StartDate, proj.EndDate, proj.URL, pq.Array(proj.Technologies))
		if err != nil {
			return fmt.Errorf("insert project: %w", err)
		}
	}

	for _, skill := range profile.Skills {
		_, err := tx.Exec(`
			INSERT INTO skills (user_id, name, category, level, years_of_experience)
			VALUES ($1, $2, $3, $4, $5)
		`, userID, skill.Name, skill.Category, string(skill.Level), skill.YearsOfExperience)
		if err != nil {
			return fmt.Errorf("insert skill: %w", err)
		}
	}

	for _, cert := range profile.Certifications {
		_, err := tx.Exec(`
			INSERT INTO certifications (user_id, title, issuer, description, issue_date, expiry_date, credential_url)
			VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)
		`, userID, cert.Title, cert.Issuer, cert.Description, cert.IssueDate, cert.ExpiryDate, cert.CredentialURL)
		if err != nil {
			return fmt.Errorf("insert certification: %w", err)
		}
	}

	return tx.Commit()
}

// Get loads the full stored profile for a user. A user without a saved
// profile gets an empty profile, not an error.
func (m *ProfileModel) Get(userID int) (StructuredProfile, error) {
	profile := NewStructuredProfile()

	err := m.DB.QueryRow(`
		SELECT name, bio, portfolio, linkedin, github FROM profiles WHERE user_id = $1
	`, userID).Scan(&profile.Personal.Name, &profile.Personal.Bio,
		&profile.Personal.Portfolio, &profile.Personal.LinkedIn, &profile.Personal.GitHub)
	if err != nil && err != sql.ErrNoRows {
		return profile, fmt.Errorf("load profile: %w", err)
	}

	rows, err := m.DB.Query(`
		SELECT title, company, description, start_date, COALESCE(end_date, ''), current, location
		FROM experiences WHERE user_id = $1 ORDER BY start_date DESC
	`, userID)
	if err != nil {
		return profile, fmt.Errorf("load experiences: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var exp Experience
		if err := rows.Scan(&exp.Title, &exp.Company, &exp.Description, &exp.StartDate, &exp.EndDate, &exp.Current, &exp.Location); err != nil {
			return profile, fmt.Errorf("scan experience: %w", err)
		}
		profile.Experiences = append(profile.Experiences, exp)
	}

	eduRows, err := m.DB.Query(`
		SELECT institution, degree, field, start_date, COALESCE(end_date, ''), current
		FROM education WHERE user_id = $1 ORDER BY start_date DESC
	`, userID)
	if err != nil {
		return profile, fmt.Errorf("load education: %w", err)
	}
	defer eduRows.Close()
	for eduRows.Next() {
		var edu Education
		if err := eduRows.Scan(&edu.Institution, &edu.Degree, &edu.Field, &edu.StartDate, &edu.EndDate, &edu.Current); err != nil {
			return profile, fmt.Errorf("scan education: %w", err)
		}
		profile.Education = append(profile.Education, edu)
	}

	projRows, err := m.DB.Query(`
		SELECT title, description, start_date, COALESCE(end_date, ''), url, technologies
		FROM projects WHERE user_id = $1 ORDER BY start_date DESC
	`, userID)
	if err != nil {
		return profile, fmt.Errorf("load projects: %w", err)
	}
	defer projRows.Close()
	for projRows.Next() {
		var proj Project
		if err := projRows.Scan(&proj.Title, &proj.Description, &proj.StartDate, &proj.EndDate, &proj.URL, pq.Array(&proj.Technologies)); err != nil {
			return profile, fmt.Errorf("scan project: %w", err)
		}
		if proj.Technologies == nil {
			proj.Technologies = []string{}
		}
		profile.Projects = append(profile.Projects, proj)
	}

	skillRows, err := m.DB.Query(`
		SELECT name, category, level, years_of_experience
		FROM skills WHERE user_id = $1 ORDER BY category, name
	`, userID)
	if err != nil {
		return profile, fmt.Errorf("load skills: %w", err)
	}
	defer skillRows.Close()
	for skillRows.Next() {
		var skill Skill
		var level string
		if err := skillRows.Scan(&skill.Name, &skill.Category, &level, &skill.YearsOfExperience); err != nil {
			return profile, fmt.Errorf("scan skill: %w", err)
		}
		skill.Level = SkillLevel(level)
		profile.Skills = append(profile.Skills, skill)
	}

	certRows, err := m.DB.Query(`
		SELECT title, issuer, description, issue_date, COALESCE(expiry_date, ''), credential_url
		FROM certifications WHERE user_id = $1 ORDER BY issue_date DESC
	`, userID)
	if err != nil {
		return profile, fmt.Errorf("load certifications: %w", err)
	}
	defer certRows.Close()
	for certRows.Next() {
		var cert Certification
		if err := certRows.Scan(&cert.Title, &cert.Issuer, &cert.Description, &cert.IssueDate, &cert.ExpiryDate, &cert.CredentialURL); err != nil {
			return profile, fmt.Errorf("scan certification: %w", err)
		}
		profile.Certifications = append(profile.Certifications, cert)
	}

	return profile, nil
}
