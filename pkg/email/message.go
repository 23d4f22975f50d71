package email

import (
	"bytes"
	"fmt"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"net/textproto"
	"strings"
	"time"

	"cyber-contact-backend/internal/domain"

	"github.com/google/uuid"
)

// Envelope is the SMTP-level sender and recipient of a message.
type Envelope struct {
	From string
	To   string
}

// BuildMessage renders doc as a multipart/alternative MIME message and
// returns it with the envelope addresses parsed from its headers.
func BuildMessage(doc domain.EmailDocument, now time.Time) ([]byte, Envelope, error) {
	from, err := mail.ParseAddress(doc.From)
	if err != nil {
		return nil, Envelope{}, fmt.Errorf("%w: from %q: %v", ErrInvalidAddress, doc.From, err)
	}
	to, err := mail.ParseAddress(doc.To)
	if err != nil {
		return nil, Envelope{}, fmt.Errorf("%w: to %q: %v", ErrInvalidAddress, doc.To, err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := func(k, v string) { fmt.Fprintf(&buf, "%s: %s\r\n", k, v) }
	header("From", from.String())
	header("To", to.String())
	if doc.ReplyTo != "" {
		replyTo, err := mail.ParseAddress(doc.ReplyTo)
		if err != nil {
			return nil, Envelope{}, fmt.Errorf("%w: reply-to %q: %v", ErrInvalidAddress, doc.ReplyTo, err)
		}
		header("Reply-To", replyTo.String())
	}
	header("Subject", mime.QEncoding.Encode("utf-8", stripLineBreaks(doc.Subject)))
	header("Date", now.Format(time.RFC1123Z))
	header("Message-ID", fmt.Sprintf("<%s@%s>", uuid.NewString(), domainOf(from.Address)))
	header("MIME-Version", "1.0")
	header("Content-Type", "multipart/alternative; boundary="+mw.Boundary())
	buf.WriteString("\r\n")

	if err := writePart(mw, "text/plain; charset=UTF-8", PlainText(doc.HTML)); err != nil {
		return nil, Envelope{}, err
	}
	if err := writePart(mw, "text/html; charset=UTF-8", doc.HTML); err != nil {
		return nil, Envelope{}, err
	}
	if err := mw.Close(); err != nil {
		return nil, Envelope{}, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	return buf.Bytes(), Envelope{From: from.Address, To: to.Address}, nil
}

func writePart(mw *multipart.Writer, contentType, body string) error {
	part, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {contentType},
		"Content-Transfer-Encoding": {"quoted-printable"},
	})
	if err != nil {
		return fmt.Errorf("failed to create %s part: %w", contentType, err)
	}
	qp := quotedprintable.NewWriter(part)
	if _, err := qp.Write([]byte(body)); err != nil {
		return fmt.Errorf("failed to encode %s part: %w", contentType, err)
	}
	return qp.Close()
}

func stripLineBreaks(s string) string {
	return strings.Join(strings.Fields(strings.NewReplacer("\r", " ", "\n", " ").Replace(s)), " ")
}

func domainOf(address string) string {
	if i := strings.LastIndex(address, "@"); i >= 0 && i < len(address)-1 {
		return address[i+1:]
	}
	return "localhost"
}
