package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"imid/internal/config"
	"imid/internal/dataprocessing"
	apperrors "imid/internal/errors"
	"imid/pkg/contracts"
	"imid/pkg/contracts/domain"
)

// InputPrompt asks for the source file when none was given on the command line
const InputPrompt = "Please enter the path to your CSV file (e.g., data.csv): "

// Console prints the interactive narrative of an analysis run.
type Console struct {
	out io.Writer
	in  *bufio.Reader
}

// NewConsole creates a console reading from in and writing to out
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{out: out, in: bufio.NewReader(in)}
}

// Welcome prints the banner
func (c *Console) Welcome() {
	fmt.Fprintf(c.out, "Welcome to the %s - %s (v%s)!\n", config.AppName, config.AppLongName, contracts.Version)
	fmt.Fprintln(c.out, "This tool will process your CSV data and generate interactive charts and an analysis recap.")
}

// PromptInputPath asks for the input path and returns the trimmed answer. End of input
// yields an empty path.
func (c *Console) PromptInputPath() (string, error) {
	fmt.Fprint(c.out, InputPrompt)

	line, err := c.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read input path: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Processing announces the start of the run
func (c *Console) Processing() {
	fmt.Fprintln(c.out, "\nProcessing data...")
}

// Loaded is a LoadedFunc announcing artifact generation
func (c *Console) Loaded(_ context.Context, _ *domain.Table, _ dataprocessing.LoadStats, outputDir string) {
	fmt.Fprintln(c.out, "\nData successfully processed!")
	fmt.Fprintf(c.out, "Generating charts and insights in the '%s' directory...\n", outputDir)
}

// Success lists the recap and chart artifacts of report
func (c *Console) Success(report *domain.Report) {
	if !hasInsights(report.Insights) {
		fmt.Fprintln(c.out, "No insights were generated, likely due to data issues.")
		return
	}

	fmt.Fprintf(c.out, "Analysis recap saved to: %s\n", report.RecapPath)
	fmt.Fprintln(c.out, "\nCharts generated successfully! You can open these files in your web browser:")
	for _, chart := range report.Charts {
		fmt.Fprintf(c.out, "- %s: %s\n", report.Label(chart.View), chart.Path)
	}
	for _, path := range report.TablePaths {
		fmt.Fprintf(c.out, "- Table: %s\n", path)
	}
}

// Failure explains why the run halted
func (c *Console) Failure(err error) {
	fmt.Fprintln(c.out, describeError(err))
	fmt.Fprintln(c.out, "\nData processing failed. Please check the console messages for details.")
}

// Complete closes the narrative
func (c *Console) Complete() {
	fmt.Fprintln(c.out, "\nAnalysis complete.")
}

// Analyze runs the pipeline on inputPath with console narration. Failures are reported
// on the console and returned; they never leave partial narration behind.
func (c *Console) Analyze(ctx context.Context, pipeline *Pipeline, inputPath string) (*domain.Report, error) {
	c.Processing()
	defer c.Complete()

	report, err := pipeline.Run(ctx, inputPath)
	if err != nil {
		c.Failure(err)
		return nil, err
	}

	c.Success(report)
	return report, nil
}

func hasInsights(insights domain.InsightSet) bool {
	for _, lines := range insights {
		if len(lines) > 0 {
			return true
		}
	}
	return false
}

// describeError renders err as the single console line shown to the user
func describeError(err error) string {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		return fmt.Sprintf("Error: %v", err)
	}

	switch appErr.Type {
	case apperrors.ErrTypeNotFound:
		return fmt.Sprintf("Error: File not found at %v", appErr.Context["path"])
	case apperrors.ErrTypeEmptyInput:
		return "Error: CSV file is empty."
	case apperrors.ErrTypeRead:
		if appErr.Cause != nil {
			return fmt.Sprintf("Error reading CSV file: %v", appErr.Cause)
		}
		return "Error reading CSV file."
	case apperrors.ErrTypeMissingColumns:
		return fmt.Sprintf("Error: Missing required columns: %s", strings.Join(apperrors.MissingColumns(err), ", "))
	case apperrors.ErrTypeNoValidRows:
		return "Warning: No valid date entries found after cleaning. No charts can be generated."
	default:
		return fmt.Sprintf("Error: %s", appErr.Message)
	}
}
