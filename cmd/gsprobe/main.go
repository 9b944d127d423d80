// Command gsprobe checks geometry shader support on the first
// enumerated Vulkan device and prints the capability report.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/devblok/vkprobe/checks"
	"github.com/devblok/vkprobe/core"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := core.FromEnv("GS Test")
	checks.GeometryRequests(&cfg)

	ctx, err := core.NewContext(cfg)
	if err != nil {
		log.Errorf("bootstrap failed: %v", err)
		return 1
	}
	defer ctx.Release()

	log.Infof("device: %s, driver %s, %s creation",
		ctx.DeviceName, core.FormatDriverVersion(ctx.DriverVersion), ctx.Mode)
	for _, note := range ctx.Notes {
		log.Info(note)
	}

	s := checks.Geometry()
	sum := s.Run(ctx)
	s.Report(os.Stdout, sum)

	if cfg.BundlePath != "" {
		if err := s.WriteBundleFile(cfg.BundlePath, ctx, sum); err != nil {
			log.Errorf("%v", err)
		}
	}
	return sum.ExitCode()
}
