package main

import (
	"fmt"
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/tbourn/go-movie-collection/internal/catalog"
	"github.com/tbourn/go-movie-collection/internal/config"
	"github.com/tbourn/go-movie-collection/internal/repo"
	"github.com/tbourn/go-movie-collection/internal/services"
)

type commandContext struct {
	envFileFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(envFileFlag *string) *commandContext {
	return &commandContext{envFileFlag: envFileFlag}
}

// ensureConfig loads the optional dotenv file and then the environment,
// once per command invocation.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.envFileFlag != nil {
			path = strings.TrimSpace(*c.envFileFlag)
		}
		if err := config.LoadEnvFile(path); err != nil {
			c.configErr = err
			return
		}
		cfg, err := config.Load()
		if err != nil {
			c.configErr = fmt.Errorf("config: %w", err)
			return
		}
		c.config = &cfg
	})
	return c.config, c.configErr
}

// withStore opens and migrates the configured database, runs fn and closes
// the connection.
func (c *commandContext) withStore(fn func(*gorm.DB) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	db, err := repo.Open(cfg.DB.Driver, cfg.DB.Target(), repo.OpenOptions{Silent: true})
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer repo.Close(db)
	if err := repo.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return fn(db)
}

// catalogClient builds the remote catalog client. It returns
// services.ErrCatalogNotConfigured when no token is set.
func (c *commandContext) catalogClient() (*catalog.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return newCatalogClient(cfg.Catalog)
}

func newCatalogClient(cc config.CatalogConfig) (*catalog.Client, error) {
	if strings.TrimSpace(cc.Token) == "" {
		return nil, services.ErrCatalogNotConfigured
	}
	return catalog.New(catalog.Options{
		BaseURL:      cc.BaseURL,
		Token:        cc.Token,
		Language:     cc.Language,
		IncludeAdult: cc.IncludeAdult,
		Timeout:      cc.Timeout,
	})
}

// selectionService wires a SelectionService over db and the catalog client.
func (c *commandContext) selectionService(db *gorm.DB) (*services.SelectionService, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	client, err := c.catalogClient()
	if err != nil {
		return nil, err
	}
	svc := services.NewSelectionService(db, services.StoreRepo{}, client)
	if cfg.Catalog.ImageBaseURL != "" {
		svc.ImageBaseURL = cfg.Catalog.ImageBaseURL
	}
	return svc, nil
}
