// internal/app/system/digest/lifecycle.go
package digest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/coursepulse/internal/domain/models"
	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Generator output is untrusted text that ends up rendered in the web UI
// and in notification emails; strip any markup before it is stored.
var sanitize = bluemonday.StrictPolicy()

// Advance runs the archive→generate→persist sequence for one course and
// mutates the in-memory course to reflect the committed state. desiredCount
// is the target batch size (callers pass course.NumQuestions).
//
// The archive performed in step 1 survives a later generation failure:
// archival is committed even when no new questions arrive. The caller must
// hold the course's lock.
func (p *Processor) Advance(ctx context.Context, course *models.Course, desiredCount int) Result {
	res := Result{CourseID: course.ID}

	if !course.HasDocument() {
		p.log.Info("course has no document, skipping",
			zap.String("course", course.Name))
		res.Outcome = OutcomeSkippedNoDocument
		return res
	}

	// Step 1: archive the current batch. An empty batch archives nothing —
	// no empty QuestionGroup is ever appended.
	groups := course.PreviousQuestions
	if len(course.NewQuestionIDs) > 0 {
		group := models.QuestionGroup{
			GroupID:     groupID(course, time.Now().UTC()),
			QuestionIDs: course.NewQuestionIDs,
			ArchivedAt:  time.Now().UTC(),
		}
		groups = append(groups, group)
		res.Archived = true
	}

	// Step 2: generate. The course stores a storage key, not a path; it
	// must be resolved before the generator opens it. A failed resolution
	// or a failed or hung generator aborts only this course's step; the
	// archive above is still committed below.
	docPath, genErr := p.documentPath(course)
	var candidates []Candidate
	if genErr == nil {
		genCtx, cancel := context.WithTimeout(ctx, p.cfg.GenerateTimeout)
		candidates, genErr = p.gen.Generate(genCtx, docPath, desiredCount)
		cancel()
	}
	if genErr != nil {
		p.log.Error("question generation failed",
			zap.String("course", course.Name),
			zap.Error(genErr))
		res.Outcome = OutcomeGenerationFailed
		res.Err = genErr
		if res.Archived {
			// Keep the archive from step 1 even though generation failed.
			if err := p.commit(ctx, course, groups, nil); err != nil {
				res.Outcome = OutcomePersistFailed
				res.Err = err
			}
		}
		return res
	}

	// Step 3: validate and persist. Malformed candidates are dropped one
	// by one; they never abort the rest of the batch.
	var valid []models.Question
	for _, cand := range candidates {
		q, ok := buildQuestion(cand)
		if !ok {
			p.log.Warn("dropping malformed generated question",
				zap.String("course", course.Name),
				zap.String("text", cand.Text))
			continue
		}
		valid = append(valid, q)
	}
	if len(valid) == 0 {
		p.log.Info("no new questions generated for course",
			zap.String("course", course.Name))
	}

	var currentIDs []primitive.ObjectID
	if len(valid) > 0 {
		ids, err := p.questions.InsertBatch(ctx, valid)
		if err != nil {
			p.log.Error("persisting generated questions failed",
				zap.String("course", course.Name),
				zap.Error(err))
			res.Outcome = OutcomePersistFailed
			res.Err = err
			if res.Archived {
				if err := p.commit(ctx, course, groups, nil); err != nil {
					res.Err = err
				}
			}
			return res
		}
		currentIDs = ids
	}

	// Step 4: commit archive sequence + new current batch in one course
	// write. If this fails after the inserts above, the inserted question
	// rows are unreferenced garbage; nothing ever surfaces them.
	if err := p.commit(ctx, course, groups, currentIDs); err != nil {
		res.Outcome = OutcomePersistFailed
		res.Err = err
		return res
	}

	res.Generated = len(valid)
	res.Outcome = OutcomeOK
	return res
}

func (p *Processor) documentPath(course *models.Course) (string, error) {
	if p.docs == nil {
		return course.Document.FilePath, nil
	}
	return p.docs.Path(course.Document.FilePath)
}

func (p *Processor) commit(ctx context.Context, course *models.Course, groups []models.QuestionGroup, currentIDs []primitive.ObjectID) error {
	if err := p.courses.ReplaceQuestionState(ctx, course.ID, groups, currentIDs); err != nil {
		p.log.Error("course question-state write failed",
			zap.String("course", course.Name),
			zap.Error(err))
		return err
	}
	course.PreviousQuestions = groups
	course.NewQuestionIDs = currentIDs
	return nil
}

// buildQuestion validates one candidate and returns the sanitized question.
// Valid means: non-empty text, at least two choices, and the designated
// answer present among the choices.
func buildQuestion(c Candidate) (models.Question, bool) {
	text := strings.TrimSpace(sanitize.Sanitize(c.Text))
	if text == "" || len(c.Choices) < 2 {
		return models.Question{}, false
	}
	answer := strings.TrimSpace(sanitize.Sanitize(c.Answer))
	choices := make([]string, 0, len(c.Choices))
	answerFound := false
	for _, ch := range c.Choices {
		ch = strings.TrimSpace(sanitize.Sanitize(ch))
		if ch == "" {
			return models.Question{}, false
		}
		if ch == answer {
			answerFound = true
		}
		choices = append(choices, ch)
	}
	if !answerFound {
		return models.Question{}, false
	}
	return models.Question{Text: text, Choices: choices, Answer: answer}, true
}

// groupID derives an archive-group identifier unique within the course:
// course name + archival timestamp, with a monotonic counter suffix when
// two archives land on the same millisecond.
func groupID(course *models.Course, now time.Time) string {
	base := fmt.Sprintf("%s-%d", course.Name, now.UnixMilli())
	id := base
	for n := 2; taken(course, id); n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	return id
}

func taken(course *models.Course, id string) bool {
	for _, g := range course.PreviousQuestions {
		if g.GroupID == id {
			return true
		}
	}
	return false
}
