package symkeeper

import (
	"fmt"
	"io"

	"github.com/arthur-debert/symkeeper/pkg/ui/output/styles"
)

// PrintError writes err in the error style. Aggregate errors already carry
// one path per line.
func PrintError(w io.Writer, err error) {
	fmt.Fprintln(w, styles.GetStyle("Error").Render(fmt.Sprintf("Error: %v", err)))
}
