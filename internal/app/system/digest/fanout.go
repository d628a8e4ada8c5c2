// internal/app/system/digest/fanout.go
package digest

import (
	"context"
	"fmt"

	"github.com/dalemusser/coursepulse/internal/app/system/mailer"
	"github.com/dalemusser/coursepulse/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// NotifyMembers sends one personalized notification per resolvable member
// of the course. Deliveries are isolated: a failed send is logged and the
// remaining members are still attempted. Delivery is at-most-once per run;
// failed sends are not retried.
func (p *Processor) NotifyMembers(ctx context.Context, course *models.Course) FanoutResult {
	var out FanoutResult
	if len(course.Members) == 0 {
		return out
	}

	ids := make([]primitive.ObjectID, len(course.Members))
	for i, m := range course.Members {
		ids[i] = m.UserID
	}
	users, err := p.users.GetByIDs(ctx, ids)
	if err != nil {
		p.log.Error("resolving course members failed",
			zap.String("course", course.Name),
			zap.Error(err))
		out.Failed = len(course.Members)
		return out
	}

	for _, m := range course.Members {
		user, ok := users[m.UserID]
		if !ok {
			p.log.Warn("course member does not resolve to a user, skipping",
				zap.String("course", course.Name),
				zap.String("user_id", m.UserID.Hex()))
			out.Skipped++
			continue
		}

		email := mailer.BuildNewQuestionsEmail(mailer.NewQuestionsEmailData{
			CourseName: course.Name,
			Link:       p.questionLink(course.ID, user.ID),
		})

		sendCtx, cancel := context.WithTimeout(ctx, p.cfg.SendTimeout)
		err := p.sender.Send(sendCtx, user.Email, email.Subject, email.HTMLBody)
		cancel()
		if err != nil {
			p.log.Error("notification delivery failed",
				zap.String("course", course.Name),
				zap.String("to", user.Email),
				zap.Error(err))
			out.Failed++
			continue
		}
		out.Sent++
	}
	return out
}

// questionLink builds the member deep link embedded in notification emails.
func (p *Processor) questionLink(courseID, userID primitive.ObjectID) string {
	return fmt.Sprintf("%s/courses/%s/questions/%s", p.cfg.BaseURL, courseID.Hex(), userID.Hex())
}
