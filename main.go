package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/alacrity-engine/anim-importer/internal/atlas"
	"github.com/alacrity-engine/anim-importer/internal/clip"
	"github.com/alacrity-engine/anim-importer/internal/config"
	"github.com/alacrity-engine/anim-importer/internal/export"
	"github.com/alacrity-engine/anim-importer/internal/importer"
	"github.com/alacrity-engine/anim-importer/internal/sheet"
	"github.com/alacrity-engine/anim-importer/internal/store"
)

var (
	dataPath         string
	configPath       string
	resourceFilePath string
	sheetImagePath   string
	exportDir        string
	exportScale      int
	frameRate        float64
	nonLooping       string
	loopOverrides    string
	showClip         string
	resetLoops       bool
)

func parseFlags() {
	flag.StringVar(&dataPath, "data", "",
		"Path to the Aseprite JSON export or the PyxelEdit file to import.")
	flag.StringVar(&configPath, "config", "",
		"Path to the YAML importer config.")
	flag.StringVar(&resourceFilePath, "out", "",
		"Resource file to store animations and atlases (default: ./stage.res).")
	flag.StringVar(&sheetImagePath, "sheet", "",
		"Sprite sheet image (png or tga); when set, sprites are exported as WebP.")
	flag.StringVar(&exportDir, "export", "",
		"Directory for exported sprites (default: ./sprites).")
	flag.IntVar(&exportScale, "scale", 0,
		"Integer upscale factor for exported sprites.")
	flag.Float64Var(&frameRate, "fps", 0,
		"Frame rate of the target animation player (default: 60).")
	flag.StringVar(&nonLooping, "non-looping", "",
		"Comma separated names or patterns of animations that do not loop.")
	flag.StringVar(&loopOverrides, "loop", "",
		"Comma separated name=bool pairs forcing the loop flag of stored clips.")
	flag.StringVar(&showClip, "show", "",
		"Print the timeline of this animation (or the closest match) as YAML.")
	flag.BoolVar(&resetLoops, "reset", false,
		"Ignore loop settings of a previous import.")

	flag.Parse()
}

func main() {
	parseFlags()

	if err := godotenv.Load(); err != nil {
		log.Println("[WARN] No .env file found, using system environment variables")
	}

	if dataPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -data <file.{%s}>\n",
			filepath.Base(os.Args[0]), strings.Join(importer.Extensions(), ","))
		os.Exit(2)
	}

	// Read the config.
	var cfg config.Config
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		handleError(err)
	}

	flags := config.Flags{
		FrameRate:    frameRate,
		ResourceFile: resourceFilePath,
		ExportDir:    exportDir,
		ExportScale:  exportScale,
	}
	if nonLooping != "" {
		flags.NonLooping = strings.Split(nonLooping, ",")
	}

	overrides, err := parseLoopOverrides(loopOverrides)
	handleError(err)

	cfg.Resolve(flags)
	handleError(cfg.Validate())

	atlasSettings, err := cfg.Atlas()
	handleError(err)

	// Parse the source file.
	imp, err := importer.For(dataPath)
	handleError(err)
	contents, err := os.ReadFile(dataPath)
	handleError(err)

	name := strings.TrimSuffix(filepath.Base(dataPath), filepath.Ext(dataPath))
	s, err := imp.Import(name, contents)
	handleError(err)

	if !s.HasAnimations() {
		log.Printf("[WARN] %s has no animations; use tags to name them", dataPath)
	}

	a, err := atlas.Build(s, atlasSettings)
	handleError(err)

	// Open the resource file.
	resourceFile, err := store.Open(cfg.ResourceFile)
	handleError(err)
	defer resourceFile.Close()

	previous := map[string]bool{}
	if !resetLoops {
		previous, err = resourceFile.PreviousLoops(s.Name)
		handleError(err)
	}

	clips, err := clip.Assemble(s, a, cfg.Clip(previous))
	handleError(err)

	handleError(resourceFile.SaveSheet(s.Name, a, clips))
	log.Printf("[INFO] %s: %d sprites, %d clips saved to %s",
		s.Name, len(a.Sprites), len(clips), cfg.ResourceFile)

	if len(overrides) > 0 {
		handleError(applyLoopOverrides(resourceFile, s.Name, clips, overrides))
		log.Printf("[INFO] %d loop overrides applied", len(overrides))
	}

	if sheetImagePath != "" {
		handleError(exportSprites(s, a, cfg))
	}

	if showClip != "" {
		handleError(printClip(s, a, clips, showClip))
	}
}

func exportSprites(s *sheet.Sheet, a *atlas.Atlas, cfg config.Config) error {
	f, err := os.Open(sheetImagePath)
	if err != nil {
		return err
	}
	defer f.Close()

	img, err := export.DecodeSheet(f, filepath.Ext(sheetImagePath))
	if err != nil {
		return err
	}

	dir := cfg.ExportDir
	if dir == "" {
		dir = "./sprites"
	}

	if err := export.Sprites(img, a, s.Height, dir, cfg.ExportScale); err != nil {
		return err
	}

	log.Printf("[INFO] %d sprites exported to %s", len(a.Sprites), dir)

	return nil
}

func printClip(s *sheet.Sheet, a *atlas.Atlas, clips []clip.Clip, name string) error {
	anim, ok := s.Similar(name)
	if !ok {
		return fmt.Errorf("no animation matches %q", name)
	}

	for _, c := range clips {
		if c.Name != anim.Name {
			continue
		}

		data, err := WriteClipMeta(c, a)
		if err != nil {
			return err
		}

		_, err = os.Stdout.Write(data)
		return err
	}

	return fmt.Errorf("animation %q has no clip", anim.Name)
}

func handleError(err error) {
	if err != nil {
		panic(err)
	}
}
