package sqlite

import (
	"fmt"

	"faceserver/internal/model"
)

// EnrollmentRepository implements repository.EnrollmentRepository for SQLite.
type EnrollmentRepository struct {
	db *DB
}

// NewEnrollmentRepository creates a new SQLite enrollment repository.
func NewEnrollmentRepository(db *DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Insert adds an enrolled person together with their reference image paths.
func (r *EnrollmentRepository) Insert(enr *model.Enrollment) (int64, error) {
	r.db.Lock()
	defer r.db.Unlock()

	tx, err := r.db.Conn().Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`INSERT INTO enrollments (name) VALUES (?)`, enr.Name)
	if err != nil {
		return 0, fmt.Errorf("failed to insert enrollment: %w", err)
	}

	enrollmentID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}

	for _, path := range enr.ImagePaths {
		if _, err := tx.Exec(`
			INSERT INTO enrollment_images (enrollment_id, image_path)
			VALUES (?, ?)
		`, enrollmentID, path); err != nil {
			return 0, fmt.Errorf("failed to insert enrollment image: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return enrollmentID, nil
}

// GetAll retrieves every enrolled person with their image paths, in
// insertion order.
func (r *EnrollmentRepository) GetAll() ([]model.Enrollment, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`SELECT id, name FROM enrollments ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []model.Enrollment
	for rows.Next() {
		var enr model.Enrollment
		if err := rows.Scan(&enr.ID, &enr.Name); err != nil {
			return nil, fmt.Errorf("failed to scan enrollment: %w", err)
		}
		enrollments = append(enrollments, enr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate enrollments: %w", err)
	}

	for i := range enrollments {
		paths, err := r.getImagePaths(enrollments[i].ID)
		if err != nil {
			return nil, err
		}
		enrollments[i].ImagePaths = paths
	}

	return enrollments, nil
}

func (r *EnrollmentRepository) getImagePaths(enrollmentID int64) ([]string, error) {
	rows, err := r.db.Conn().Query(`
		SELECT image_path FROM enrollment_images WHERE enrollment_id = ? ORDER BY id
	`, enrollmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrollment images: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, fmt.Errorf("failed to scan image path: %w", err)
		}
		paths = append(paths, path)
	}

	return paths, rows.Err()
}
