package email

// Template names an embedded HTML email template under templates/.
type Template string

const (
	// TemplateMeetingAdmin notifies the operator inbox of a new booking.
	TemplateMeetingAdmin Template = "meeting_admin"

	// TemplateMeetingConfirmation confirms a booking to the requester.
	TemplateMeetingConfirmation Template = "meeting_confirmation"

	// TemplateContactAdmin forwards a contact-form message to the operator.
	TemplateContactAdmin Template = "contact_admin"

	// TemplateContactAck acknowledges a contact-form message to its sender.
	TemplateContactAck Template = "contact_ack"

	// TemplateApplicationAdmin forwards a job application (with resume) to
	// the operator inbox.
	TemplateApplicationAdmin Template = "application_admin"

	// TemplateApplicationAck acknowledges a job application to the applicant.
	TemplateApplicationAck Template = "application_ack"
)
