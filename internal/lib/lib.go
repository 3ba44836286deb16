// Package lib holds modules that do not fit strictly into other layers:
// the email client (Resend), the Google Calendar client, background job
// processing (Redis/Asynq), and token helpers.
package lib
