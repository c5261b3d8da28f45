package mailservice

import (
	"bytes"
	"errors"
	"testing"

	"github.com/go-mail/mail/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSendEmail(t *testing.T) {
	mockParser := new(MockTemplate)
	mockDialer := new(MockDialer)

	mailer := Mail{
		dialer: mockDialer,
		parser: mockParser,
		sender: "sender@example.com",
	}

	subject := bytes.NewBufferString("Test Subject")
	plainBody := bytes.NewBufferString("Test Plain Body")
	htmlBody := bytes.NewBufferString("Test HTML Body")
	mockParser.On("ParseTemplate", "template.html", mock.Anything).Return(subject, plainBody, htmlBody, nil)

	mockDialer.On("DialAndSend", mock.MatchedBy(func(msgs []*mail.Message) bool {
		return len(msgs) == 1 &&
			msgs[0].GetHeader("To")[0] == "test@example.com" &&
			msgs[0].GetHeader("From")[0] == "sender@example.com" &&
			msgs[0].GetHeader("Subject")[0] == "Test Subject"
	})).Return(nil)

	err := mailer.send("test@example.com", nil, "template.html")
	assert.NoError(t, err)

	mockParser.AssertExpectations(t)
	mockDialer.AssertExpectations(t)
}

func TestSendEmailTemplateError(t *testing.T) {
	mockParser := new(MockTemplate)
	mockDialer := new(MockDialer)

	mailer := Mail{
		dialer: mockDialer,
		parser: mockParser,
		sender: "sender@example.com",
	}

	mockParser.On("ParseTemplate", "missing.html", mock.Anything).Return(nil, nil, nil, errors.New("could not parse template"))

	err := mailer.send("test@example.com", nil, "missing.html")
	assert.EqualError(t, err, "could not parse template")

	mockDialer.AssertNotCalled(t, "DialAndSend", mock.Anything)
}
