package mailer

// Config holds mail provider configuration. The Postmark tokens are
// optional so development environments can run on the file-backed sender;
// SenderEmail establishes the From identity for all outbound mail.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL,required"`
	DevMailDir           string `env:"DEV_MAIL_DIR" envDefault:"./tmp/outbox"`
}
