package derive

import (
	"fmt"

	"github.com/cmmoran/classgen/internal/model"
)

const mockTemplate = `$this
            ->getMockBuilder('%s')
            ->disableOriginalConstructor()
            ->getMock()`

// TestValue returns the source literal the generated test passes to a setter
// for a field declared with typ. typ must be the fully qualified type.
func TestValue(typ string) string {
	switch model.KindOf(typ) {
	case model.KindOpaque:
		return ""
	case model.KindString:
		return `"I am a string"`
	case model.KindInteger:
		return "42"
	case model.KindFloat:
		return "9.95"
	case model.KindBool:
		return "true"
	case model.KindArray:
		return "[]"
	default:
		return fmt.Sprintf(mockTemplate, typ)
	}
}
