// file: cmd/verify/verify.go

package verify

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dos33disk/internal/logger"
	"dos33disk/pkg/diskimg"
)

// VerifyOptions configures verification output
type VerifyOptions struct {
	JSON  bool // Output the report in JSON format
	Quiet bool // Only set the exit status, print nothing on success
}

// DefaultVerifyOptions returns default options for Verify
func DefaultVerifyOptions() *VerifyOptions {
	return &VerifyOptions{}
}

// Verify audits a disk image and prints the consistency report. A
// failing report is returned as an error so the process exits non-zero.
func Verify(diskPath string, opts *VerifyOptions) error {
	if opts == nil {
		opts = DefaultVerifyOptions()
	}

	imageBytes, err := os.ReadFile(diskPath)
	if err != nil {
		return fmt.Errorf("failed to read disk image: %w", err)
	}

	report := diskimg.Verify(imageBytes)

	if opts.JSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(report); err != nil {
			return err
		}
	} else if !opts.Quiet || !report.OK() {
		printReport(diskPath, report)
	}

	if !report.OK() {
		logger.Warn("image failed verification", "path", diskPath,
			"failures", len(report.Failures()))
		return fmt.Errorf("%s failed verification", diskPath)
	}
	logger.Debug("image verified", "path", diskPath, "files", len(report.Files))
	return nil
}

func printReport(diskPath string, report *diskimg.Report) {
	fmt.Printf("Verifying %s\n\n", diskPath)

	for _, check := range report.Checks {
		status := "PASS"
		if !check.OK {
			status = "FAIL"
		}
		fmt.Printf("  [%s] %s", status, check.Name)
		if check.Detail != "" {
			fmt.Printf(": %s", check.Detail)
		}
		fmt.Println()
	}

	if len(report.Files) > 0 {
		fmt.Printf("\n  %d file(s):\n", len(report.Files))
		for _, file := range report.Files {
			status := "PASS"
			if !file.OK {
				status = "FAIL"
			}
			fmt.Printf("  [%s] %-30s %s, %d sectors", status, file.Name, file.Type, file.SectorCount)
			if file.Detail != "" {
				fmt.Printf(": %s", file.Detail)
			}
			fmt.Println()
		}
	}

	if report.OK() {
		fmt.Println("\nImage is consistent")
	}
}

// Cmd is the cobra command for verify
var Cmd = &cobra.Command{
	Use:   "verify <image.dsk>",
	Short: "Check a disk image for filesystem consistency",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := DefaultVerifyOptions()
		opts.JSON, _ = cmd.Flags().GetBool("json")
		opts.Quiet, _ = cmd.Flags().GetBool("quiet")

		cmd.SilenceUsage = true
		return Verify(args[0], opts)
	},
}

func init() {
	Cmd.Flags().Bool("json", false, "output the report in JSON format")
	Cmd.Flags().BoolP("quiet", "q", false, "print nothing when the image is consistent")
}
