package command

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-questkeep/internal/save"
	"github.com/pixil98/go-questkeep/internal/storage"
	"github.com/pixil98/go-questkeep/internal/world"
)

type StorageConfig struct {
	Maps     AssetConfig[*world.MapDef] `json:"maps" envPrefix:"QUESTKEEP_MAPS_"`
	SaveFile string                     `json:"save_file" env:"QUESTKEEP_SAVE_FILE"`
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()
	el.Add(c.Maps.Validate("maps"))

	if c.SaveFile == "" {
		el.Add(fmt.Errorf("save_file is required"))
	} else if info, err := os.Stat(filepath.Dir(c.SaveFile)); err == nil && !info.IsDir() {
		el.Add(fmt.Errorf("save_file: %q is not a directory", filepath.Dir(c.SaveFile)))
	}

	return el.Err()
}

// BuildRegistry loads every map asset and builds the world.
func (c *StorageConfig) BuildRegistry() (*world.Registry, error) {
	maps, err := c.Maps.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating map store: %w", err)
	}

	registry, err := world.NewRegistry(maps)
	if err != nil {
		return nil, fmt.Errorf("building world: %w", err)
	}
	return registry, nil
}

func (c *StorageConfig) BuildGateway(sessionID string) *save.Gateway {
	return save.NewGateway(c.SaveFile, save.WithSessionID(sessionID))
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path" env:"PATH"`
}

func (c *AssetConfig[T]) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}

	return nil
}

func (c *AssetConfig[T]) BuildFileStore() (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path)
}
