package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/wilhasse/go-ibdrescue/scan"
)

func newProbeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "probe <file-or-device>",
		Short: "Determine the page size of an input by sampling",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			f, size, err := openInput(args[0])
			if err != nil {
				return errors.Wrap(err, "open input")
			}
			defer f.Close()

			ps, err := scan.ProbePageSize(f, size)
			if err != nil {
				return err
			}
			log.WithField("page_size", ps).Info("probe result")
			return nil
		},
	}
}
