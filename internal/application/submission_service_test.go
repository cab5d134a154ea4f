package application

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rabnifoundation/rabni-api/internal/domain/entity"
	"github.com/rabnifoundation/rabni-api/pkg/mailer"
	mailtpl "github.com/rabnifoundation/rabni-api/pkg/mailer/templates"
)

func newSubmissionFixture() (*SubmissionService, *fakeContacts, *fakeVolunteers, *fakeObjects, *fakePublisher) {
	contacts := &fakeContacts{}
	vols := &fakeVolunteers{}
	objects := newFakeObjects()
	pub := &fakePublisher{}
	svc := NewSubmissionService(contacts, vols, objects, pub, "staff@rabni.org", mailtpl.Brand{CompanyName: "RABNI Foundation"}, nil)
	svc.now = func() time.Time { return time.UnixMilli(1700000000123) }
	return svc, contacts, vols, objects, pub
}

func TestSubmitContactPublishesNotification(t *testing.T) {
	svc, contacts, _, _, pub := newSubmissionFixture()

	m, err := svc.SubmitContact(context.Background(), ContactInput{
		SenderName: "Ada", SenderEmail: "ada@example.com", Message: "Hello", InquiryType: "partnership",
	})
	require.NoError(t, err)
	assert.False(t, m.IsRead)
	assert.Len(t, contacts.msgs, 1)

	require.Len(t, pub.jobs, 1)
	job := pub.jobs[0].(mailer.NotificationJob)
	assert.Equal(t, "staff@rabni.org", job.To)
	assert.Equal(t, "ada@example.com", job.ReplyTo)
	assert.Equal(t, mailtpl.ContactMessage, job.Template)
	assert.Equal(t, "Ada", job.Data["Name"])
	assert.NoError(t, job.Validate())
}

func TestSubmitContactSurvivesPublishFailure(t *testing.T) {
	svc, contacts, _, _, pub := newSubmissionFixture()
	pub.fail = true

	_, err := svc.SubmitContact(context.Background(), ContactInput{SenderName: "Ada", SenderEmail: "ada@example.com", Message: "Hi"})
	require.NoError(t, err)
	assert.Len(t, contacts.msgs, 1)
}

func TestSubmitContactValidates(t *testing.T) {
	svc, contacts, _, _, pub := newSubmissionFixture()
	cases := []ContactInput{
		{SenderEmail: "ada@example.com", Message: "Hi"},
		{SenderName: "Ada", SenderEmail: "not-an-email", Message: "Hi"},
		{SenderName: "Ada", SenderEmail: "ada@example.com", Message: "  "},
	}
	for _, in := range cases {
		_, err := svc.SubmitContact(context.Background(), in)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
	assert.Empty(t, contacts.msgs)
	assert.Empty(t, pub.jobs)
}

func TestSubmitContactStoreFailureSkipsNotification(t *testing.T) {
	svc, contacts, _, _, pub := newSubmissionFixture()
	contacts.fail = true
	_, err := svc.SubmitContact(context.Background(), ContactInput{SenderName: "Ada", SenderEmail: "ada@example.com", Message: "Hi"})
	assert.ErrorIs(t, err, errBoom)
	assert.Empty(t, pub.jobs)
}

func TestSubmitVolunteerWithCV(t *testing.T) {
	svc, _, vols, objects, pub := newSubmissionFixture()

	v, err := svc.SubmitVolunteer(context.Background(), VolunteerInput{FullName: "Musa  Ibrahim Bello", Email: "musa@example.com"}, upload("My CV.PDF", "cv"))
	require.NoError(t, err)

	assert.Equal(t, "https://storage.googleapis.com/test-bucket/cvs/Musa_Ibrahim_Bello_1700000000123.pdf", v.CVURL)
	assert.Equal(t, "cv", objects.uploads[v.CVURL])
	assert.Len(t, vols.apps, 1)
	require.Len(t, pub.jobs, 1)
	assert.Equal(t, mailtpl.VolunteerApplication, pub.jobs[0].(mailer.NotificationJob).Template)
}

func TestSubmitVolunteerWithoutCV(t *testing.T) {
	svc, _, vols, objects, _ := newSubmissionFixture()
	v, err := svc.SubmitVolunteer(context.Background(), VolunteerInput{FullName: "Musa", Email: "musa@example.com"}, nil)
	require.NoError(t, err)
	assert.Empty(t, v.CVURL)
	assert.Empty(t, objects.uploads)
	assert.Len(t, vols.apps, 1)
}

func TestSubmitVolunteerCleansUpCV(t *testing.T) {
	svc, _, vols, objects, _ := newSubmissionFixture()
	vols.fail = true
	_, err := svc.SubmitVolunteer(context.Background(), VolunteerInput{FullName: "Musa", Email: "musa@example.com"}, upload("cv.docx", "x"))
	assert.ErrorIs(t, err, errBoom)
	assert.Len(t, objects.deleted, 1)
}

func TestCVObjectPathSanitizes(t *testing.T) {
	svc, _, _, _, _ := newSubmissionFixture()
	p := svc.cvObjectPath("Ada / Obi", "noext")
	assert.Regexp(t, regexp.MustCompile(`^cvs/Ada__Obi_1700000000123\.bin$`), p)
}

func TestCVObjectPathFallsBackForUnusableNames(t *testing.T) {
	svc, _, _, _, _ := newSubmissionFixture()
	for _, name := range []string{"Чиома", "李 娜", "   ", "..."} {
		assert.Equal(t, "cvs/applicant_1700000000123.pdf", svc.cvObjectPath(name, "cv.PDF"), name)
	}
	assert.Equal(t, "cvs/Ngozi_1700000000123.pdf", svc.cvObjectPath("Ngozi", "cv.pdf"))
}

func TestMarkContactRead(t *testing.T) {
	svc, contacts, _, _, _ := newSubmissionFixture()
	m, err := svc.SubmitContact(context.Background(), ContactInput{SenderName: "Ada", SenderEmail: "ada@example.com", Message: "Hi"})
	require.NoError(t, err)

	require.NoError(t, svc.MarkContactRead(context.Background(), m.ID))
	assert.True(t, contacts.read[m.ID])
	assert.ErrorIs(t, svc.MarkContactRead(context.Background(), "missing"), ErrNotFound)
}

func TestDashboardOverview(t *testing.T) {
	contacts := &fakeContacts{}
	vols := &fakeVolunteers{}
	for i := 0; i < 7; i++ {
		_ = contacts.Create(context.Background(), &entity.ContactMessage{SenderName: "x"})
		_ = vols.Create(context.Background(), &entity.VolunteerApplication{FullName: "y"})
	}
	svc := NewDashboardService(fakeStats{stats: entity.DashboardStats{Volunteers: 7, ContactMessages: 7, BlogPosts: 2}}, vols, contacts)

	d, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), d.Stats.Volunteers)
	assert.Len(t, d.RecentVolunteers, 5)
	assert.Len(t, d.RecentMessages, 5)

	_, err = NewDashboardService(fakeStats{err: errBoom}, vols, contacts).Overview(context.Background())
	assert.ErrorIs(t, err, errBoom)
}
