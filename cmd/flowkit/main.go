package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/flowkit/flowkit/pkg/configs/serialization"
	"github.com/flowkit/flowkit/pkg/tasks"
	"github.com/flowkit/flowkit/pkg/timing"
	"github.com/flowkit/flowkit/pkg/utils/env"
	"github.com/flowkit/flowkit/pkg/utils/try"
	"github.com/flowkit/flowkit/pkg/workloads/pod"
)

func main() {
	logger := log.Default()

	// define command line flags
	//-- path to serialization settings
	psettings := flag.String(
		"settings", os.Getenv("FLOWKIT_SETTINGS"), "path to serialization settings file",
	)
	//-- path to the task definition to render
	ptask := flag.String("task", "", "path to task definition file")
	//-- where to write the rendered pod spec; stdout when empty
	pout := flag.String("o", "", "output file (default: stdout)")
	flag.Parse()

	if *psettings == "" || *ptask == "" {
		flag.Usage()
		logger.Fatal("both -settings and -task are required")
	}

	settings := try.To(serialization.Load(*psettings)).OrFatal(logger)
	def := try.To(tasks.LoadDefinition(*ptask)).OrFatal(logger)

	timeline := timing.NewTimeline()

	watch := timing.Start("render "+def.Name, timeline, logger)
	rendered, err := pod.Render(def, settings)
	watch.Stop()
	if err != nil {
		logger.Fatal(err)
	}

	encoded := try.To(json.MarshalIndent(rendered.PodSpec, "", "  ")).OrFatal(logger)
	encoded = append(encoded, '\n')

	out := os.Stdout
	if *pout != "" {
		f := try.To(os.Create(*pout)).OrFatal(logger)
		defer f.Close()
		out = f
	}
	try.To(out.Write(encoded)).OrFatal(logger)

	if env.GetBool("FLOWKIT_REPORT_TIMING") {
		for _, r := range timeline.Records() {
			logger.Printf("timeline: %s wall=%v cpu=%v", r.Name, r.WallTime, r.ProcessTime)
		}
	}
}
