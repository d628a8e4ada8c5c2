// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// NewQuestionsEmailData holds data for the new-questions notification.
type NewQuestionsEmailData struct {
	CourseName string
	Link       string
}

// BuildNewQuestionsEmail creates the per-member digest notification with
// both HTML and text bodies. The recipient is set by the caller.
func BuildNewQuestionsEmail(data NewQuestionsEmailData) Email {
	return Email{
		Subject:  fmt.Sprintf("New Questions for %s", data.CourseName),
		TextBody: buildNewQuestionsText(data),
		HTMLBody: buildNewQuestionsHTML(data),
	}
}

func buildNewQuestionsText(data NewQuestionsEmailData) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("New questions are ready for %s.\n\n", data.CourseName))
	buf.WriteString("Open this link to answer the latest questions:\n")
	buf.WriteString(data.Link + "\n")
	return buf.String()
}

func buildNewQuestionsHTML(data NewQuestionsEmailData) string {
	tmpl := template.Must(template.New("newquestions").Parse(newQuestionsHTMLTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

const newQuestionsHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>New Questions</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px; box-shadow: 0 2px 4px rgba(0, 0, 0, 0.1);">
          <tr>
            <td style="padding: 32px 32px 24px; text-align: center; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #4f46e5;">New Questions for {{.CourseName}}</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 32px;">
              <p style="margin: 0 0 24px; font-size: 16px; color: #374151; line-height: 1.5;">
                A fresh set of questions is waiting for you.
              </p>
              <table role="presentation" width="100%" cellspacing="0" cellpadding="0">
                <tr>
                  <td align="center">
                    <a href="{{.Link}}" style="display: inline-block; padding: 14px 32px; background-color: #4f46e5; color: #ffffff; text-decoration: none; font-size: 16px; font-weight: 500; border-radius: 6px;">
                      View Questions
                    </a>
                  </td>
                </tr>
              </table>
            </td>
          </tr>
          <tr>
            <td style="padding: 24px 32px; background-color: #f9fafb; border-top: 1px solid #e5e7eb; border-radius: 0 0 8px 8px;">
              <p style="margin: 0; font-size: 12px; color: #9ca3af; text-align: center;">
                You are receiving this email because you are a member of {{.CourseName}}.
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`
