package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/Mavwarf/pushicons/internal/config"
	"github.com/Mavwarf/pushicons/internal/display"
	"github.com/Mavwarf/pushicons/internal/generator"
	"github.com/Mavwarf/pushicons/internal/history"
	"github.com/Mavwarf/pushicons/internal/imagick"
	"github.com/Mavwarf/pushicons/internal/mqtt"
	"github.com/Mavwarf/pushicons/internal/paths"
	"github.com/Mavwarf/pushicons/internal/raster"
	"github.com/Mavwarf/pushicons/internal/sdk"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	s, err := config.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Run 'pushicons help' for usage.\n")
		os.Exit(2)
	}

	switch s.Command {
	case "help":
		printUsage()
	case "version":
		printVersion()
	case "list":
		listSDKs()
	case "history":
		if s.ClearLog {
			os.Exit(clearHistory(paths.HistoryPath()))
		}
		os.Exit(showHistory(paths.HistoryPath(), s.HistoryN))
	default:
		os.Exit(generate(context.Background(), s, display.Stdout(), processor()))
	}
}

// processor prefers ImageMagick and falls back to the pure Go renderer.
func processor() generator.Processor {
	if p, err := imagick.Find(); err == nil {
		return p
	}
	return raster.Processor{}
}

// generate runs the full pipeline and returns the process exit code.
func generate(ctx context.Context, s config.Settings, out *display.Printer, proc generator.Processor) int {
	defer out.Blank()

	out.Header("Checking Project & Icon")

	if err := generator.CheckSource(s.IconFile); err != nil {
		out.Error("%s does not exist", s.IconFile)
		return 1
	}
	out.Success("%s exists", s.IconFile)

	d, err := sdk.Resolve(s.SDK)
	if err != nil {
		out.Error("%v", err)
		return 1
	}
	out.Success("SDK settings found: %s", d.Name)

	out.Header("Generating Push Icons for " + d.Name)
	rep := generator.New(proc, 0).Generate(ctx, d, s.IconFile)
	printReport(out, rep)

	if s.Log {
		recordHistory(rep)
	}
	if s.MQTTBroker != "" {
		if err := mqtt.PublishReport(s.MQTTBroker, rep); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}

	if rep.Failed() > 0 {
		return 1
	}
	return 0
}

func printReport(out *display.Printer, rep generator.Report) {
	for _, r := range rep.Results {
		switch {
		case !r.OK():
			out.Error("%v", r.Err)
		case r.Op == generator.OpCrop:
			out.Success("%s cropped", r.Icon.Name)
		default:
			out.Success("%s created", r.Path)
		}
	}
}

// recordHistory is best-effort: failures are reported but never change
// the exit code.
func recordHistory(rep generator.Report) {
	st, err := history.Open(paths.HistoryPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "history: %v\n", err)
		return
	}
	defer st.Close()
	if _, err := st.Record(rep); err != nil {
		fmt.Fprintf(os.Stderr, "history: %v\n", err)
	}
}

func showHistory(path string, n int) int {
	if !paths.Exists(path) {
		fmt.Println("No runs recorded (use --log to record runs).")
		return 0
	}
	st, err := history.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer st.Close()

	runs, err := st.Recent(n)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	for _, r := range runs {
		fmt.Print(formatRun(r))
	}
	return 0
}

func clearHistory(path string) int {
	if !paths.Exists(path) {
		fmt.Println("No runs recorded.")
		return 0
	}
	st, err := history.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer st.Close()

	if err := st.Clear(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Printf("Cleared run history in %s\n", st.Path())
	return 0
}

func formatRun(r history.Run) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  sdk=%s  source=%s  created=%d  failed=%d\n",
		r.Time.Local().Format("2006-01-02 15:04:05"), r.SDK, r.Source, r.Created, r.Failed)
	for _, res := range r.Results {
		if res.Error != "" {
			fmt.Fprintf(&b, "    %-6s %s  error=%s\n", res.Op, res.Path, res.Error)
		}
	}
	return b.String()
}

func listSDKs() {
	for _, id := range sdk.IDs() {
		d, _ := sdk.Resolve(id)
		fmt.Printf("%-10s %-28s %s (%d icons)\n", id, d.Name, d.BaseDir, len(d.Icons))
	}
}

func printVersion() {
	fmt.Printf("pushicons %s (%s) %s/%s\n", version, buildDate, runtime.GOOS, runtime.GOARCH)
}

func printUsage() {
	fmt.Printf("pushicons %s - Generate push notification icons for mobile SDKs\n", version)
	fmt.Printf(`
Usage:
  pushicons [options]
  pushicons list | history [n|clear] | version | help

Options:
  --icon, -i <path>      Source icon (default: %s)
  --sdk, -s <id>         Target SDK (default: %s)
  --log                  Record the run in the history database
  --mqtt <broker>        Publish a run summary, e.g. tcp://localhost:1883

SDKs:
  %s

A plain run uses only --icon and --sdk and stores nothing. --log, --mqtt
and history are opt-in extras; run history lives under %%APPDATA%%\pushicons
or ~/.config/pushicons.

A file named <icon>-<sdk>.png next to the source icon (e.g. push-unity.png)
replaces the source for that SDK.

ImageMagick (magick or convert) is used when found on PATH; otherwise
icons are rendered in-process.
`, config.DefaultIconFile, config.DefaultSDK, strings.Join(sdk.IDs(), ", "))
}

