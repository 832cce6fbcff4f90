package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/domino14/aoe4analyze/staticdata"
)

func statusLine(c *staticdata.Cache, fetchedAt string) string {
	return fmt.Sprintf("Data cached at %s, %d units, %d buildings, %d technologies",
		fetchedAt, len(c.Units), len(c.Buildings), len(c.Technologies))
}

// ageLabel counts whole days since the fetch.
func ageLabel(age time.Duration) string {
	days := int(age / (24 * time.Hour))
	switch {
	case days <= 0:
		return "fresh today"
	case days == 1:
		return "1 day old"
	default:
		return fmt.Sprintf("%d days old", days)
	}
}

func (a *app) fetchDataCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch-data",
		Short: "Force refresh of static data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.store().Refresh(cmd.Context())
			if err != nil {
				return fail("refresh data", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, newStyles(out).success.Render(statusLine(c, c.FetchedAt)))
			return nil
		},
	}
}

func (a *app) checkDataCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-data",
		Short: "Show cache status and age",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.store().Load(cmd.Context())
			if err != nil {
				return fail("read data", err)
			}
			fetched, err := c.FetchedTime()
			if err != nil {
				return fail("read data", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, statusLine(c, fetched.UTC().Format(time.RFC3339)))
			fmt.Fprintln(out, newStyles(out).hint.Render("Cache is "+ageLabel(time.Since(fetched))))
			return nil
		},
	}
}
