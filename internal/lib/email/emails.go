package email

// MeetingDetails carries the booking fields both meeting emails render.
// MeetLink is the resolved link: the real Meet URL when the calendar event
// was created, the fallback placeholder otherwise.
type MeetingDetails struct {
	Name      string
	Email     string
	Phone     string
	Website   string
	Subject   string
	DateLabel string
	TimeLabel string
	TimeZone  string
	Duration  string
	MeetLink  string
}

func (m MeetingDetails) templateData() map[string]string {
	return map[string]string{
		"Name":      m.Name,
		"Email":     m.Email,
		"Phone":     m.Phone,
		"Website":   m.Website,
		"Subject":   m.Subject,
		"DateLabel": m.DateLabel,
		"TimeLabel": m.TimeLabel,
		"TimeZone":  m.TimeZone,
		"Duration":  m.Duration,
		"MeetLink":  m.MeetLink,
	}
}

// SendMeetingRequestNotification emails the operator inbox about a new
// meeting request.
func (c *Client) SendMeetingRequestNotification(to string, details MeetingDetails) error {
	return c.SendEmail(
		[]string{to},
		"New Meeting Request from "+details.Name,
		TemplateMeetingAdmin,
		details.templateData(),
	)
}

// SendMeetingConfirmation emails the requester their booking confirmation.
func (c *Client) SendMeetingConfirmation(to string, details MeetingDetails) error {
	return c.SendEmail(
		[]string{to},
		"Meeting Confirmation: "+details.Subject,
		TemplateMeetingConfirmation,
		details.templateData(),
	)
}

// SendContactNotification forwards a contact-form message to the operator.
func (c *Client) SendContactNotification(to, name, fromEmail, subject, message string) error {
	return c.SendEmail(
		[]string{to},
		"New Message from "+name+": "+subject,
		TemplateContactAdmin,
		map[string]string{
			"Name":    name,
			"Email":   fromEmail,
			"Subject": subject,
			"Message": message,
		},
	)
}

// SendContactAcknowledgement thanks the sender of a contact-form message.
func (c *Client) SendContactAcknowledgement(to, name, subject string) error {
	return c.SendEmail(
		[]string{to},
		"Message Received - Shield Support",
		TemplateContactAck,
		map[string]string{
			"Name":    name,
			"Subject": subject,
		},
	)
}

// SendApplicationNotification forwards a job application, resume attached,
// to the operator inbox.
func (c *Client) SendApplicationNotification(to []string, name, applicantEmail, phone, coverLetter, jobTitle string, resume Attachment) error {
	if coverLetter == "" {
		coverLetter = "N/A"
	}
	return c.SendEmail(
		to,
		"New Application for "+jobTitle+" - "+name,
		TemplateApplicationAdmin,
		map[string]string{
			"Name":        name,
			"Email":       applicantEmail,
			"Phone":       phone,
			"CoverLetter": coverLetter,
			"JobTitle":    jobTitle,
		},
		resume,
	)
}

// SendApplicationAcknowledgement confirms receipt of an application to the
// applicant.
func (c *Client) SendApplicationAcknowledgement(to, name, phone, jobTitle string) error {
	return c.SendEmail(
		[]string{to},
		"Application Received: "+jobTitle,
		TemplateApplicationAck,
		map[string]string{
			"Name":     name,
			"Email":    to,
			"Phone":    phone,
			"JobTitle": jobTitle,
		},
	)
}
