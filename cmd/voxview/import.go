package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/taigrr/voxview/internal/logger"
	"github.com/taigrr/voxview/pkg/models"
	"github.com/taigrr/voxview/pkg/tilemap"
	"go.uber.org/zap"
)

type importOptions struct {
	name      string
	kind      string
	category  string
	firstID   uint16
	collision uint8
	noFit     bool
	output    string
}

func newImportCmd() *cobra.Command {
	var opts importOptions
	cmd := &cobra.Command{
		Use:   "import model.glb [model.glb...]",
		Short: "Pack glTF/GLB models into a tileset",
		Long: "Each model becomes one tile, numbered from --first-id in argument order.\n" +
			"The tileset is written to <tilesets>/<type>/<name>.gbts unless --output is set.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, true)
			if err != nil {
				return err
			}
			defer logger.Sync()

			ts, err := buildTileset(args, opts, a.log)
			if err != nil {
				return err
			}
			path := opts.output
			if path == "" {
				path = filepath.Join(a.cfg.Assets.TilesetRoot, filepath.FromSlash(ts.RelativePath()))
			}
			if err := tilemap.WriteTileset(path, ts); err != nil {
				return err
			}
			a.log.Info("tileset written", zap.String("path", path), zap.Int("tiles", len(ts.Tiles)))
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.name, "name", "imported", "tileset name")
	cmd.Flags().StringVar(&opts.kind, "type", "local", "tileset type: regional, local or interior")
	cmd.Flags().StringVar(&opts.category, "category", "prop", "category stored on every tile")
	cmd.Flags().Uint16Var(&opts.firstID, "first-id", 1, "id of the first imported tile")
	cmd.Flags().Uint8Var(&opts.collision, "collision", 0, "collision value stored on every tile")
	cmd.Flags().BoolVar(&opts.noFit, "no-fit", false, "keep model units instead of fitting one map cell")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "explicit output path")
	return cmd
}

// buildTileset imports every model path into a new tileset.
func buildTileset(paths []string, opts importOptions, log *zap.Logger) (*tilemap.Tileset, error) {
	kind, err := tilemap.ParseTilesetType(opts.kind)
	if err != nil {
		return nil, err
	}
	if opts.firstID == 0 {
		return nil, errors.New("tile id 0 is reserved for air")
	}
	if int(opts.firstID)+len(paths)-1 > tilemap.MaxTileID {
		return nil, fmt.Errorf("%d models starting at id %d exceed id %d", len(paths), opts.firstID, tilemap.MaxTileID)
	}

	im := &models.Importer{FitUnitCell: !opts.noFit}
	ts := tilemap.NewTileset(opts.name, kind)
	for i, path := range paths {
		model, err := im.Load(path)
		if err != nil {
			return nil, fmt.Errorf("importing %s: %w", path, err)
		}
		if !model.Textured {
			log.Warn("model has no texture, using checker", zap.String("path", path))
		}
		id := opts.firstID + uint16(i)
		ts.Add(tilemap.TileDefinition{
			ID:        id,
			Name:      model.Name,
			Category:  opts.category,
			Collision: opts.collision,
			Primitive: model.Primitive,
		})
		log.Debug("imported model",
			zap.String("path", path),
			zap.Uint16("id", id),
			zap.Int("triangles", model.Primitive.Mesh.TriangleCount()),
		)
	}
	return ts, nil
}
