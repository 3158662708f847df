// mapdump 按种子生成一张地图并以字符形式输出，用于检查生成器和建筑模板
//
// 用法:
//
//	go run ./cmd/mapdump -seed 42
//	go run ./cmd/mapdump -seed 42 -summary
//	go run ./cmd/mapdump -schema -out data/world.schema.json
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/gonewx/deadlands/pkg/config"
	"github.com/gonewx/deadlands/pkg/mapgen"
	"github.com/gonewx/deadlands/pkg/spawn"
	"github.com/gonewx/deadlands/pkg/world"
	"github.com/invopop/jsonschema"
)

var (
	configDir = flag.String("config", "data", "配置目录")
	seed      = flag.Int64("seed", 1, "世界种子（0 为随机）")
	summary   = flag.Bool("summary", false, "只输出统计，不输出地图")
	verbose   = flag.Bool("verbose", false, "记录每栋被跳过的建筑")
	schema    = flag.Bool("schema", false, "输出 world.yaml 的 JSON Schema 而不是地图")
	outPath   = flag.String("out", "", "输出文件，留空写到标准输出")
)

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	out := io.Writer(os.Stdout)
	var tmpPath string
	if *outPath != "" {
		if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
			fatalf("create output directory: %v", err)
		}
		tmpPath = *outPath + ".tmp"
		f, err := os.Create(tmpPath)
		if err != nil {
			fatalf("create output: %v", err)
		}
		defer f.Close()
		out = f
	}

	w := bufio.NewWriter(out)
	var err error
	if *schema {
		err = writeSchema(w)
	} else {
		err = dumpMap(w)
	}
	if err == nil {
		err = w.Flush()
	}
	if err != nil {
		fatalf("%v", err)
	}

	if tmpPath != "" {
		if err := os.Rename(tmpPath, *outPath); err != nil {
			fatalf("replace output: %v", err)
		}
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "mapdump: "+format+"\n", args...)
	os.Exit(1)
}

// buildSchema 从 WorldConfig 反射出 world.yaml 的 JSON Schema
func buildSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
	}
	s := reflector.Reflect(new(config.WorldConfig))
	s.Title = "Deadlands World Config"
	s.Description = "Map size, forest edge, building density and viewport used by the map generator"
	return s
}

func writeSchema(w io.Writer) error {
	data, err := json.MarshalIndent(buildSchema(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

func dumpMap(w io.Writer) error {
	cfg, err := config.LoadBundle(*configDir)
	if err != nil {
		return err
	}

	s := *seed
	if s == 0 {
		s = mapgen.NewRand(0).Int63()
	}
	rng := rand.New(rand.NewSource(s))

	gen := mapgen.NewGenerator(cfg.World, cfg.Buildings)
	gen.Verbose = *verbose
	result := gen.Generate(rng)

	if !*summary {
		for _, row := range result.Grid.Rows() {
			fmt.Fprintln(w, row)
		}
		fmt.Fprintln(w)
	}
	writeSummary(w, s, result)
	return nil
}

// writeSummary 输出地块统计、建筑列表和玩家出生点
func writeSummary(w io.Writer, s int64, result *mapgen.Result) {
	grid := result.Grid
	total := grid.Width() * grid.Height()

	fmt.Fprintf(w, "seed:      %d\n", s)
	fmt.Fprintf(w, "size:      %dx%d tiles (%.0f px)\n", grid.Width(), grid.Height(), grid.TileSize())
	for _, t := range world.Tiles {
		n := grid.Count(t)
		fmt.Fprintf(w, "%-10s %6d  %5.1f%%  %c\n", t.String()+":", n, 100*float64(n)/float64(total), t.Glyph())
	}

	fmt.Fprintf(w, "buildings: %d placed, %d skipped\n", len(result.Buildings), result.Skipped())
	for _, b := range result.Buildings {
		fmt.Fprintf(w, "  %-16s %-6s at (%d, %d) size %d\n", b.Template.Name, b.Template.Tier, b.OriginX, b.OriginY, b.Size)
	}

	finder := spawn.NewFinder(grid, rand.New(rand.NewSource(s)))
	if p, ok := finder.PlayerStart(); ok {
		col, row := grid.WorldToTile(p.X, p.Y)
		fmt.Fprintf(w, "start:     (%.0f, %.0f) tile (%d, %d)\n", p.X, p.Y, col, row)
	} else {
		fmt.Fprintln(w, "start:     none")
	}
}
