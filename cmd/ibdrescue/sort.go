package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wilhasse/go-ibdrescue/format"
	"github.com/wilhasse/go-ibdrescue/rescue"
)

func newSortCmd() *cobra.Command {
	var pageSize int

	cmd := &cobra.Command{
		Use:   "sort <pages-file> <output-image>",
		Short: "Rebuild a tablespace image with every page at its page-number offset",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			in, err := os.Open(args[0])
			if err != nil {
				return errors.Wrap(err, "open input")
			}
			defer in.Close()

			out, err := os.OpenFile(args[1], os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
			if err != nil {
				return errors.Wrap(err, "create output image")
			}
			defer out.Close()

			stats, err := rescue.SortPages(in, out, pageSize, log)
			if err != nil {
				return err
			}
			log.WithFields(logrus.Fields{
				"pages_in":          stats.PagesIn,
				"pages_placed":      stats.PagesPlaced,
				"max_page_number":   stats.MaxPageNumber,
				"invalid_checksums": stats.InvalidChecksums,
				"input_sorted":      stats.InputSorted,
			}).Info("sort complete")
			return nil
		},
	}

	cmd.Flags().IntVar(&pageSize, "page-size", format.DefaultPageSize, "page size of the input pages")
	return cmd
}
