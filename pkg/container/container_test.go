package container

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"library-backend/internal/config"
	"library-backend/internal/infrastructure/database"
	dbmocks "library-backend/pkg/database/mocks"
)

func TestNew_WiresEveryLayer(t *testing.T) {
	cfg := &config.Config{
		Database: &database.DBConfig{},
		JWT:      config.JWTConfig{Secret: "s", Issuer: "library", AccessTTL: time.Hour},
		Library:  config.LibraryConfig{DefaultPageSize: 10},
	}

	c := New(cfg, nil, &dbmocks.TxManager{})

	assert.NotNil(t, c.JWTManager)
	assert.NotNil(t, c.Metrics)
	assert.NotNil(t, c.BookRepo)
	assert.NotNil(t, c.LoanRepo)
	assert.NotNil(t, c.UserRepo)
	assert.NotNil(t, c.BookService)
	assert.NotNil(t, c.LoanService)
	assert.NotNil(t, c.AdminService)
	assert.NotNil(t, c.BookHandler)
	assert.NotNil(t, c.LoanHandler)
	assert.NotNil(t, c.AdminHandler)

	// Cleanup without a database is a no-op
	c.Cleanup()
}
