package utils

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/pressly/goose/v3"
)

func TestRunMigrations_UsesSeam(t *testing.T) {
	orig := gooseUp
	defer func() { gooseUp = orig }()

	var gotDir string
	gooseUp = func(_ context.Context, _ *sql.DB, dir string, _ ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	}

	fsys := fstest.MapFS{"00001_init.sql": &fstest.MapFile{Data: []byte("-- +goose Up\nSELECT 1;\n")}}
	if err := RunMigrations(context.Background(), nil, fsys); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}
	if gotDir != "." {
		t.Fatalf("expected root dir, got %q", gotDir)
	}
}

func TestRunMigrations_WrapsError(t *testing.T) {
	orig := gooseUp
	defer func() { gooseUp = orig }()

	boom := errors.New("boom")
	gooseUp = func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error { return boom }

	err := RunMigrations(context.Background(), nil, fstest.MapFS{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
}
