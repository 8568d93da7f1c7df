// Command sysfsmount builds a small demonstration systree and serves
// it as a real, mountable filesystem via internal/fusebridge.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/gokernel/sysfstree/internal/fusebridge"
	"github.com/gokernel/sysfstree/systree"
	"github.com/gokernel/sysfstree/systree/refnodes"
	"github.com/gokernel/sysfstree/sysfs"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sysfsmount",
		Short: "Mount a demonstration systree as a read-only filesystem",
		RunE:  run,
	}

	flags := cmd.Flags()
	flags.String("mountpoint", "", "directory to mount the tree at (required)")
	flags.String("log-level", "info", "logrus level: debug, info, warn, error")
	flags.Bool("debug", false, "alias for --log-level=debug")
	flags.Bool("read-only-check", true, "verify the mount is active before reporting success")

	_ = cmd.MarkFlagRequired("mountpoint")

	viper.SetEnvPrefix("SYSFSTREE")
	viper.AutomaticEnv()
	_ = viper.BindPFlags(flags)

	return cmd
}

func run(cmd *cobra.Command, _ []string) error {
	log := newLogger(viper.GetString("log-level"), viper.GetBool("debug"))
	mountpoint := viper.GetString("mountpoint")
	if mountpoint == "" {
		return fmt.Errorf("sysfsmount: --mountpoint is required")
	}

	tree := systree.NewTree(log)
	if err := buildSampleTree(tree); err != nil {
		return fmt.Errorf("sysfsmount: building sample tree: %w", err)
	}

	fsys := sysfs.NewFileSystem(tree)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	server, err := fusebridge.Mount(ctx, mountpoint, fsys, log)
	if err != nil {
		return fmt.Errorf("sysfsmount: mount: %w", err)
	}

	if viper.GetBool("read-only-check") {
		if err := fusebridge.Verify(mountpoint); err != nil {
			_ = server.Unmount()
			return fmt.Errorf("sysfsmount: %w", err)
		}
		log.Info("sysfsmount: mount verified active")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		server.Wait()
		// Release the signal goroutine when the server exits on its own.
		cancel()
		return nil
	})
	g.Go(func() error {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)
		select {
		case sig := <-sigCh:
			log.WithField("signal", sig).Info("sysfsmount: unmounting")
			return server.Unmount()
		case <-gctx.Done():
			return nil
		}
	})
	return g.Wait()
}

func newLogger(level string, debug bool) *logrus.Logger {
	log := logrus.New()
	if debug {
		level = "debug"
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)
	return log
}

// buildSampleTree populates tree with a small device hierarchy, the
// way the core's own controllers are expected to: static attributes
// for fixed identifiers, a counter for a statistic, a read-write
// tunable, and a symlink, grounded in refnodes' ready-made AttrIO
// implementations.
func buildSampleTree(tree *systree.Tree) error {
	root := tree.Root()

	devices, err := systree.NewBranch("devices", nil, nil)
	if err != nil {
		return err
	}
	if err := root.AddChild(devices); err != nil {
		return err
	}

	cpu0Attrs := systree.NewAttrSetBuilder().
		Add("online", systree.CanRead|systree.CanWrite).
		Add("model", systree.CanRead).
		Build()
	cpu0Handler := refnodes.MultiAttrIO{
		"online": refnodes.NewKVAttr("1"),
		"model":  refnodes.NewStaticAttr([]byte("generic-cpu")),
	}
	cpu0, err := systree.NewLeaf("cpu0", cpu0Attrs, cpu0Handler)
	if err != nil {
		return err
	}
	if err := devices.AddChild(cpu0); err != nil {
		return err
	}

	netBranch, err := systree.NewBranch("net", nil, nil)
	if err != nil {
		return err
	}
	if err := devices.AddChild(netBranch); err != nil {
		return err
	}

	eth0Attrs := systree.NewAttrSetBuilder().
		Add("mtu", systree.CanRead|systree.CanWrite).
		Add("rx_packets", systree.CanRead).
		Build()
	eth0Handler := refnodes.MultiAttrIO{
		"mtu":        refnodes.NewKVAttr("1500"),
		"rx_packets": refnodes.NewCounterAttr(0),
	}
	eth0, err := systree.NewLeaf("eth0", eth0Attrs, eth0Handler)
	if err != nil {
		return err
	}
	if err := netBranch.AddChild(eth0); err != nil {
		return err
	}

	primaryNIC, err := systree.NewSymlink("primary_nic", "/devices/net/eth0")
	if err != nil {
		return err
	}
	return netBranch.AddChild(primaryNIC)
}
