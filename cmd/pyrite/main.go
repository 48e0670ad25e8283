// Pyrite CLI - inspect the inline policy and exercise the object runtime
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"

	"github.com/softglow/pyrite/buildcfg"
	"github.com/softglow/pyrite/inline"
	"github.com/softglow/pyrite/rt"
	"github.com/softglow/pyrite/snapshot"

	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("pyrite")

func main() {
	configDir := flag.String("C", ".", "Directory to search for pyrite.toml (walks up)")
	showTable := flag.Bool("table", false, "Print the resolved inline policy table")
	smoke := flag.Bool("smoke", false, "Run the runtime smoke scenario")
	snapshotPath := flag.String("snapshot", "", "Write a CBOR heap snapshot after the smoke run")
	verbose := flag.Bool("v", false, "Verbose output")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pyrite [options]\n\n")
		fmt.Fprintf(os.Stderr, "Resolves the build configuration and inline policy for the Pyrite runtime.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  pyrite -table                 # Print the policy for the nearest pyrite.toml\n")
		fmt.Fprintf(os.Stderr, "  pyrite -C ./cfg -table        # Use a specific config directory\n")
		fmt.Fprintf(os.Stderr, "  pyrite -smoke -snapshot h.cbor  # Exercise the runtime, dump the heap\n")
	}
	flag.Parse()

	verbosity := 0
	if *verbose {
		verbosity = 1
	}
	commonlog.Configure(verbosity, nil)

	build, err := buildcfg.FindAndLoad(*configDir)
	if err != nil {
		log.Criticalf("build configuration: %s", err.Error())
		os.Exit(1)
	}
	log.Infof("profile=%s cross-unit=%v dir=%s", build.Profile, build.CrossUnit, build.Dir)

	table, err := inline.Resolve(build)
	if err != nil {
		// Policy misconfiguration fails the run outright; degrading to a
		// slower variant without notice is not an option.
		log.Criticalf("inline policy: %s", err.Error())
		os.Exit(1)
	}

	if *showTable {
		if err := table.Render(os.Stdout); err != nil {
			log.Criticalf("render: %s", err.Error())
			os.Exit(1)
		}
	}

	if *smoke || *snapshotPath != "" {
		if err := runSmoke(build, *snapshotPath); err != nil {
			log.Criticalf("smoke: %s", err.Error())
			os.Exit(1)
		}
	}

	if !*showTable && !*smoke && *snapshotPath == "" {
		flag.Usage()
		os.Exit(2)
	}
}

// runSmoke exercises the lifetime, tracking, and invocation surfaces
// against a live runtime, then optionally writes a heap snapshot.
func runSmoke(build buildcfg.Build, snapshotPath string) error {
	r := rt.NewRuntime()
	r.Lock()
	defer r.Unlock()

	// Lifetime: two extra references, three releases, exactly one finalize.
	finalized := 0
	probeType := &rt.TypeDesc{
		Name:  "Probe",
		Flags: rt.FlagGCTracked,
		Dealloc: func(o *rt.Object) {
			finalized++
			rt.ReleaseSlots(o)
		},
	}
	probe := r.NewObject(probeType, 0)
	rt.Retain(probe)
	rt.Retain(probe)
	rt.Release(probe)
	rt.Release(probe)
	rt.Release(probe)
	if finalized != 1 {
		return fmt.Errorf("probe finalized %d times, want 1", finalized)
	}
	log.Info("lifetime scenario passed")

	// Invocation: the two paths must agree.
	sum := func(args []*rt.Object, kwargs map[string]*rt.Object) (*rt.Object, error) {
		total := 0
		for _, a := range args {
			total += rt.BoxValue(a).(int)
		}
		for _, v := range kwargs {
			total += rt.BoxValue(v).(int)
		}
		return r.NewBox(total), nil
	}
	fast := r.NewFunc("sum", -1, sum)
	slow := r.NewFallbackFunc("sum", -1, sum)
	a, b := r.NewBox(40), r.NewBox(2)

	fastRes, err := r.Invoke(fast, []*rt.Object{a, b}, nil)
	if err != nil {
		return err
	}
	slowRes, err := r.Invoke(slow, []*rt.Object{a, b}, nil)
	if err != nil {
		return err
	}
	if rt.BoxValue(fastRes) != rt.BoxValue(slowRes) {
		return fmt.Errorf("paths disagree: %v vs %v", rt.BoxValue(fastRes), rt.BoxValue(slowRes))
	}
	log.Infof("invocation scenario passed (result %v)", rt.BoxValue(fastRes))

	// Leave a small object graph alive for the snapshot.
	graph := r.NewTuple(a, b)
	rt.Release(fastRes)
	rt.Release(slowRes)
	rt.Release(fast)
	rt.Release(slow)
	rt.Release(a)
	rt.Release(b)

	stats := r.Stats()
	log.Infof("stats: allocs=%d fast=%d fallback=%d tracked=%d",
		stats.Allocs, stats.FastCalls, stats.FallbackCalls, r.TrackedCount())

	if snapshotPath != "" {
		s := snapshot.Capture(r, string(build.Profile))
		if err := snapshot.WriteFile(snapshotPath, s); err != nil {
			return err
		}
		log.Infof("wrote %s: %s", snapshotPath, s.String())
	}

	rt.Release(graph)
	return nil
}
