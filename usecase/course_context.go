package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/dlms/chatbot/domain"
	"github.com/dlms/chatbot/utils/log"
)

const (
	NoCoursesMessage = "No active courses available at the moment."

	FallbackContext = "NOTE: Live course data is currently unavailable (Backend connection failed). " +
		"However, here is some general platform info:\n" +
		"- Platform Name: DLMS (Decentralized Learning Management System)\n" +
		"- Features: Decentralized storage (IPFS), Secure Identity, Expert Instructors.\n" +
		"- Contact Support: support@dlms.com"

	courseListHeader = "Here is the list of available courses directly from the database:\n"

	defaultTitle       = "Unknown Title"
	defaultInstructor  = "Unknown Instructor"
	defaultDescription = "No description"

	// DefaultMaxContextBytes keeps the rendered catalog from crowding out the
	// model's context window.
	DefaultMaxContextBytes = 16 << 10
)

// CourseContext turns the live course catalog into a prompt context block.
// It is safe for concurrent use.
type CourseContext struct {
	catalog  domain.CourseCatalog
	maxBytes int
}

func NewCourseContext(c domain.CourseCatalog, maxBytes int) *CourseContext {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxContextBytes
	}
	return &CourseContext{catalog: c, maxBytes: maxBytes}
}

var _ domain.ContextProvider = (*CourseContext)(nil)

// GetContext never fails: any catalog error yields FallbackContext.
func (p *CourseContext) GetContext(ctx context.Context) string {
	courses, err := p.catalog.ListCourses(ctx)
	if err != nil {
		p.logFallback(ctx, err)
		return FallbackContext
	}
	return FormatCourses(courses, p.maxBytes)
}

func (p *CourseContext) logFallback(ctx context.Context, err error) {
	kind := domain.FetchKindOf(err)
	fields := []zap.Field{zap.String("kind", kind.String()), zap.Error(err)}

	var fe *domain.FetchError
	if errors.As(err, &fe) && fe.StatusCode != 0 {
		fields = append(fields, zap.Int("status", fe.StatusCode))
	}

	switch kind {
	case domain.FetchCanceled:
		log.WithCtx(ctx).Info("Catalog fetch canceled by caller, using fallback data", fields...)
	default:
		log.WithCtx(ctx).Warn("Failed to fetch from course service, using fallback data", fields...)
	}
}

// FormatCourses renders courses as a numbered list in input order. Entries
// that would push the block past maxBytes are summarized in a trailer line;
// the first entry is always kept.
func FormatCourses(courses []domain.Course, maxBytes int) string {
	if len(courses) == 0 {
		return NoCoursesMessage
	}

	var b strings.Builder
	b.WriteString(courseListHeader)

	for i, course := range courses {
		entry := formatCourse(i+1, course)
		if maxBytes > 0 && b.Len()+len(entry) > maxBytes && i > 0 {
			fmt.Fprintf(&b, "... and %d more courses.\n", len(courses)-i)
			break
		}
		b.WriteString(entry)
	}

	return b.String()
}

func formatCourse(idx int, c domain.Course) string {
	lessons := 0
	for _, m := range c.Modules {
		lessons += len(m.Lessons)
	}

	return fmt.Sprintf(
		"%d. Course: %s\n"+
			"   - Instructor: %s\n"+
			"   - Modules: %d modules with %d lessons\n"+
			"   - Description: %s\n",
		idx,
		orDefault(c.Title, defaultTitle),
		orDefault(c.Instructor, defaultInstructor),
		len(c.Modules), lessons,
		orDefault(c.Description, defaultDescription),
	)
}

func orDefault(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}
