package extract

import (
	"errors"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/dkkundu/DeepDocAI/fault"
)

// DOCExtractor handles the legacy binary Word format by delegating to the
// external antiword converter. A missing converter is a deployment problem
// and reported as such, distinct from a document that fails to convert.
type DOCExtractor struct {
	logger  *zap.Logger
	binary  string
	convert func(binary, path string) ([]byte, error)
}

func NewDOCExtractor(logger *zap.Logger, binary string) *DOCExtractor {
	return &DOCExtractor{
		logger:  logger,
		binary:  binary,
		convert: runConverter,
	}
}

func runConverter(binary, path string) ([]byte, error) {
	return exec.Command(binary, path).Output()
}

func (d *DOCExtractor) ExtractText(fp string) (string, error) {
	if _, err := exec.LookPath(d.binary); err != nil {
		return "", fault.Wrap(fault.CapabilityUnavailable, err, "%s is required for DOC extraction", d.binary)
	}

	out, err := d.convert(d.binary, fp)
	if err != nil {
		detail := "conversion failed"
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if stderr := strings.TrimSpace(string(exitErr.Stderr)); stderr != "" {
				detail = stderr
			}
		}
		d.logger.Error("Failed to convert DOC",
			zap.String("file", fp),
			zap.Error(err))
		return "", fault.Wrap(fault.ExtractionFailed, err, "failed to convert DOC: %s", detail)
	}

	// Converter output may contain stray non-UTF-8 bytes; drop them instead
	// of failing the whole document.
	return strings.ToValidUTF8(string(out), ""), nil
}
