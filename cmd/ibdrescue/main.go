// ibdrescue scans files or raw block devices for InnoDB pages and
// extracts whatever still validates, without trusting any file-system or
// tablespace metadata.
package main

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	verbosity int
	log       = logrus.New()
)

func main() {
	root := &cobra.Command{
		Use:           "ibdrescue",
		Short:         "Recover InnoDB pages from damaged or deleted storage",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			switch verbosity {
			case 0:
				log.SetLevel(logrus.InfoLevel)
			case 1:
				log.SetLevel(logrus.DebugLevel)
			default:
				log.SetLevel(logrus.TraceLevel)
			}
		},
	}
	root.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity")

	root.AddCommand(
		newExtractCmd(),
		newProbeCmd(),
		newSortCmd(),
		newInfoCmd(),
	)

	if err := root.Execute(); err != nil {
		log.WithError(err).Error("command failed")
		os.Exit(1)
	}
}

// openInput opens path read-only and determines its length by seeking,
// which works for regular files and raw block devices alike (Stat reports
// zero for devices).
func openInput(path string) (*os.File, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	size, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	return f, size, nil
}
