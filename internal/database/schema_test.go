package database

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Feature: catalog-platform, Property: pending migrations are executed
func TestMigrationFilesExist(t *testing.T) {
	migrationsDir := "../../migrations"

	// Check if migrations directory exists
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		t.Fatal("Migrations directory does not exist")
	}

	// Expected migration files
	expectedMigrations := []string{
		"00001_create_users_table.sql",
		"00002_create_refresh_tokens_table.sql",
		"00003_create_products_table.sql",
		"00004_create_restricted_terms_table.sql",
		"00005_create_orders_table.sql",
		"00006_create_order_items_table.sql",
		"00007_create_unsuccessful_searches_table.sql",
	}

	for _, migration := range expectedMigrations {
		path := filepath.Join(migrationsDir, migration)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Errorf("Migration file %s does not exist", migration)
		}
	}
}

func TestMigrationFilesHaveUpAndDown(t *testing.T) {
	migrationsDir := "../../migrations"

	files, err := os.ReadDir(migrationsDir)
	if err != nil {
		t.Fatalf("Failed to read migrations directory: %v", err)
	}

	sqlFileCount := 0
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		sqlFileCount++
		content, err := os.ReadFile(filepath.Join(migrationsDir, file.Name()))
		if err != nil {
			t.Errorf("Failed to read migration file %s: %v", file.Name(), err)
			continue
		}

		contentStr := string(content)

		// Check for goose Up directive
		if !strings.Contains(contentStr, "-- +goose Up") {
			t.Errorf("Migration file %s missing '-- +goose Up' directive", file.Name())
		}

		// Check for goose Down directive
		if !strings.Contains(contentStr, "-- +goose Down") {
			t.Errorf("Migration file %s missing '-- +goose Down' directive", file.Name())
		}

		// Check for StatementBegin/End
		if !strings.Contains(contentStr, "-- +goose StatementBegin") {
			t.Errorf("Migration file %s missing '-- +goose StatementBegin' directive", file.Name())
		}

		if !strings.Contains(contentStr, "-- +goose StatementEnd") {
			t.Errorf("Migration file %s missing '-- +goose StatementEnd' directive", file.Name())
		}
	}

	if sqlFileCount == 0 {
		t.Error("No SQL migration files found")
	}
}

func TestMigrationFilesCreateExpectedTables(t *testing.T) {
	migrationsDir := "../../migrations"

	expectedTables := map[string]string{
		"users":                 "00001_create_users_table.sql",
		"refresh_tokens":        "00002_create_refresh_tokens_table.sql",
		"products":              "00003_create_products_table.sql",
		"restricted_terms":      "00004_create_restricted_terms_table.sql",
		"orders":                "00005_create_orders_table.sql",
		"order_items":           "00006_create_order_items_table.sql",
		"unsuccessful_searches": "00007_create_unsuccessful_searches_table.sql",
	}

	for tableName, migrationFile := range expectedTables {
		path := filepath.Join(migrationsDir, migrationFile)
		content, err := os.ReadFile(path)
		if err != nil {
			t.Errorf("Failed to read migration file %s: %v", migrationFile, err)
			continue
		}

		contentStr := string(content)

		// Check if migration creates the table
		createTableStmt := "CREATE TABLE IF NOT EXISTS " + tableName
		if !strings.Contains(contentStr, createTableStmt) {
			t.Errorf("Migration file %s does not create table %s", migrationFile, tableName)
		}

		// Check if migration has drop table in down section
		dropTableStmt := "DROP TABLE IF EXISTS " + tableName
		if !strings.Contains(contentStr, dropTableStmt) {
			t.Errorf("Migration file %s does not drop table %s in down section", migrationFile, tableName)
		}
	}
}

func TestMigrationColumnsMatchRepositories(t *testing.T) {
	migrationsDir := "../../migrations"

	expectedColumns := map[string][]string{
		"00001_create_users_table.sql":                 {"company_name", "phone", "role"},
		"00003_create_products_table.sql":              {"position", "stock_code", "shelf_price_incl_tax", "purchase_discount_rate", "list_price_incl_tax", "discount5", "discount10", "discount15", "tax_rate", "currency", "image_url"},
		"00005_create_orders_table.sql":                {"status", "total_amount", "admin_note", "approved_at"},
		"00006_create_order_items_table.sql":           {"applied_discount", "selected_variant", "line_total"},
		"00007_create_unsuccessful_searches_table.sql": {"search_term", "user_id"},
	}

	for migrationFile, columns := range expectedColumns {
		content, err := os.ReadFile(filepath.Join(migrationsDir, migrationFile))
		if err != nil {
			t.Errorf("Failed to read migration file %s: %v", migrationFile, err)
			continue
		}

		for _, column := range columns {
			if !strings.Contains(string(content), column) {
				t.Errorf("Migration file %s missing column %s", migrationFile, column)
			}
		}
	}
}
