package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	annocmp "github.com/annotools/go-annocmp"
	"github.com/annotools/go-annocmp/coco"
	"github.com/annotools/go-annocmp/compare"
	"github.com/annotools/go-annocmp/render"
	"github.com/annotools/go-annocmp/server"
	"github.com/annotools/go-annocmp/viewport"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

func main() {

	machinePath := flag.String("machine", "", "machine annotations JSON file")
	humanPath := flag.String("human", "", "human annotations JSON file")
	imagesDir := flag.String("images", "", "directory containing the images")
	threshold := flag.Float64("threshold", compare.DefaultIoUThreshold,
		"minimum IoU for a pair to be accepted")
	reportPath := flag.String("report", "", "write the statistics report to this file")
	renderDir := flag.String("render", "", "write annotated images to this directory")
	serve := flag.Bool("serve", false, "start the interactive viewer server")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if *machinePath == "" || *humanPath == "" {
		flag.Usage()
		logger.Fatal("both -machine and -human annotation files are required")
	}

	machine, err := coco.Load(*machinePath, annocmp.Machine)

	if err != nil {
		logger.WithError(err).Fatal("failed to load machine annotations")
	}

	human, err := coco.Load(*humanPath, annocmp.Human)

	if err != nil {
		logger.WithError(err).Fatal("failed to load human annotations")
	}

	logger.WithFields(logrus.Fields{
		"machine": len(machine.Annotations),
		"human":   len(human.Annotations),
		"images":  len(machine.Images),
	}).Info("annotations loaded")

	if *imagesDir != "" {

		found, err := coco.ScanImages(*imagesDir)

		if err != nil {
			logger.WithError(err).Fatal("failed to scan images directory")
		}

		resolved := coco.ResolveImagePaths(machine.Images, *imagesDir)

		logger.WithFields(logrus.Fields{
			"found":    len(found),
			"resolved": resolved,
		}).Info("image files resolved")
	}

	run := compare.Compare(machine.Annotations, human.Annotations,
		len(machine.Images), *threshold)

	logger.WithFields(logrus.Fields{
		"matches":    run.Metrics.Matches,
		"mismatches": run.Metrics.Mismatches,
		"missing":    run.Metrics.Missing,
		"extra":      run.Metrics.Extra,
		"precision":  fmt.Sprintf("%.3f", run.Metrics.Precision),
		"recall":     fmt.Sprintf("%.3f", run.Metrics.Recall),
		"f1":         fmt.Sprintf("%.3f", run.Metrics.F1),
	}).Info("comparison complete")

	if err := run.WriteReport(os.Stdout); err != nil {
		logger.WithError(err).Fatal("failed to print report")
	}

	if *reportPath != "" {
		if err := writeReportFile(run, *reportPath); err != nil {
			logger.WithError(err).Fatal("failed to write report file")
		}
		logger.WithField("path", *reportPath).Info("report written")
	}

	if *renderDir != "" {
		if err := renderImages(machine, human, *renderDir, logger); err != nil {
			logger.WithError(err).Fatal("failed to render images")
		}
	}

	if *serve {
		cfg := server.LoadConfig()
		cfg.IoUThreshold = *threshold

		if err := cfg.Validate(); err != nil {
			logger.WithError(err).Fatal("invalid server configuration")
		}

		srv := server.New(cfg, logger)
		srv.SetDatasets(machine, human)

		if err := srv.Run(); err != nil {
			logger.WithError(err).Fatal("viewer server stopped")
		}
	}
}

func writeReportFile(run *compare.Run, path string) error {

	f, err := os.Create(path)

	if err != nil {
		return err
	}

	defer f.Close()

	return run.WriteReport(f)
}

// renderImages draws the annotation overlay onto every resolved image and
// writes the results as PNG files
func renderImages(machine, human *coco.Dataset, outDir string,
	logger *logrus.Logger) error {

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	machineByImage := annocmp.ByImage(machine.Annotations)
	humanByImage := annocmp.ByImage(human.Annotations)

	font := render.DefaultFont()
	rendered := 0

	for id, rec := range machine.Images {

		if rec.Path == "" {
			continue
		}

		img := gocv.IMRead(rec.Path, gocv.IMReadColor)

		if img.Empty() {
			logger.WithField("path", rec.Path).Warn("could not read image")
			continue
		}

		// render at the image's own resolution
		state := viewport.NewState()
		state.IdentityFit(viewport.Size{
			W: float64(img.Cols()),
			H: float64(img.Rows()),
		})

		prims := render.Overlay(machineByImage[id], humanByImage[id],
			state, render.DefaultOptions())

		render.Draw(&img, prims, font, 2)

		outPath := filepath.Join(outDir,
			fmt.Sprintf("annotated_%03d.png", id))

		if ok := gocv.IMWrite(outPath, img); !ok {
			logger.WithField("path", outPath).Warn("could not write image")
		} else {
			rendered++
		}

		img.Close()
	}

	logger.WithField("rendered", rendered).Info("annotated images written")

	return nil
}
