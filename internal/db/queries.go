package db

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when no install has been recorded
var ErrNotFound = errors.New("install record not found")

// RecordInstall inserts an install record and returns it with its ID
func (db *DB) RecordInstall(version, installPath, sfxPath string, mode InstallMode) (*InstallRecord, error) {
	now := time.Now().UTC()
	result, err := db.Exec(`
		INSERT INTO installs (version, install_path, sfx_path, mode, installed_at)
		VALUES (?, ?, ?, ?, ?)`,
		version, installPath, sfxPath, string(mode), now,
	)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return db.GetInstall(id)
}

// GetInstall retrieves an install record by ID
func (db *DB) GetInstall(id int64) (*InstallRecord, error) {
	row := db.QueryRow(`
		SELECT id, version, install_path, sfx_path, mode, installed_at
		FROM installs WHERE id = ?`, id)
	return scanInstall(row)
}

// GetLatestInstall returns the most recent install into installPath
func (db *DB) GetLatestInstall(installPath string) (*InstallRecord, error) {
	row := db.QueryRow(`
		SELECT id, version, install_path, sfx_path, mode, installed_at
		FROM installs WHERE install_path = ?
		ORDER BY installed_at DESC, id DESC LIMIT 1`, installPath)
	return scanInstall(row)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanInstall(s scanner) (*InstallRecord, error) {
	var r InstallRecord
	var mode string
	err := s.Scan(&r.ID, &r.Version, &r.InstallPath, &r.SFXPath, &mode, &r.InstalledAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	r.Mode = InstallMode(mode)
	return &r, nil
}
