package profile

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/user/devconnector-go/apperror"
	"github.com/user/devconnector-go/auth"
)

// testService connects to the instance named by TEST_MONGO_URI and hands back
// a Service over a throwaway database, dropped when the test ends. Tests that
// need it are skipped when the variable is unset.
func testService(t *testing.T) *Service {
	t.Helper()
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	require.NoError(t, client.Ping(ctx, nil))

	database := client.Database(fmt.Sprintf("devconnector_test_%s", primitive.NewObjectID().Hex()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = database.Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	return NewService(database)
}

func seedUser(t *testing.T, s *Service, name string) string {
	t.Helper()
	user := &auth.User{
		ID:     primitive.NewObjectID(),
		Name:   name,
		Email:  fmt.Sprintf("%s@example.com", primitive.NewObjectID().Hex()),
		Avatar: auth.GravatarURL(name + "@example.com"),
		Date:   time.Now().UTC(),
	}
	_, err := s.users.InsertOne(context.Background(), user)
	require.NoError(t, err)
	return user.ID.Hex()
}

func basicProfile() UpsertProfileRequest {
	return UpsertProfileRequest{
		Status:  "Developer",
		Skills:  "Go, JavaScript, SQL",
		Company: "ACME",
	}
}

func TestUpsertCreatesThenUpdates(t *testing.T) {
	s := testService(t)
	ctx := context.Background()
	userID := seedUser(t, s, "Ada")

	created, err := s.Upsert(ctx, userID, basicProfile())
	require.NoError(t, err)
	assert.Equal(t, "Developer", created.Status)
	assert.Equal(t, []string{"Go", "JavaScript", "SQL"}, created.Skills)
	assert.Equal(t, "Ada", created.User.Name)
	assert.Empty(t, created.Experience)
	assert.Empty(t, created.Education)

	req := basicProfile()
	req.Status = "Senior Developer"
	req.Youtube = "https://youtube.com/@ada"
	updated, err := s.Upsert(ctx, userID, req)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID, "update must not create a second profile")
	assert.Equal(t, "Senior Developer", updated.Status)
	assert.Equal(t, "https://youtube.com/@ada", updated.Social.Youtube)

	count, err := s.profiles.CountDocuments(ctx, bson.M{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestGetOwnWithoutProfile(t *testing.T) {
	s := testService(t)
	userID := seedUser(t, s, "Ada")

	_, err := s.GetOwn(context.Background(), userID)
	require.Error(t, err)
	appErr, ok := apperror.FromError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.BadRequestError, appErr.Type)
	assert.Equal(t, "There is no profile for this user", appErr.Message)
}

func TestGetByUserID(t *testing.T) {
	s := testService(t)
	ctx := context.Background()
	userID := seedUser(t, s, "Ada")

	_, err := s.Upsert(ctx, userID, basicProfile())
	require.NoError(t, err)

	got, err := s.GetByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.User.Name)

	// A malformed id and an unknown user answer identically.
	for _, id := range []string{"not-a-hex-id", primitive.NewObjectID().Hex()} {
		_, err := s.GetByUserID(ctx, id)
		require.Error(t, err)
		appErr, ok := apperror.FromError(err)
		require.True(t, ok)
		assert.Equal(t, "Profile not found", appErr.Message)
	}
}

func TestListJoinsOwners(t *testing.T) {
	s := testService(t)
	ctx := context.Background()

	for _, name := range []string{"Ada", "Grace"} {
		userID := seedUser(t, s, name)
		_, err := s.Upsert(ctx, userID, basicProfile())
		require.NoError(t, err)
	}

	profiles, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	names := []string{profiles[0].User.Name, profiles[1].User.Name}
	assert.ElementsMatch(t, []string{"Ada", "Grace"}, names)
}

func TestExperienceLifecycle(t *testing.T) {
	s := testService(t)
	ctx := context.Background()
	userID := seedUser(t, s, "Ada")

	_, err := s.Upsert(ctx, userID, basicProfile())
	require.NoError(t, err)

	first := AddExperienceRequest{Title: "Engineer", Company: "ACME", From: time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)}
	resp, err := s.AddExperience(ctx, userID, first)
	require.NoError(t, err)
	require.Len(t, resp.Experience, 1)

	second := AddExperienceRequest{Title: "Lead", Company: "ACME", From: time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC), Current: true}
	resp, err = s.AddExperience(ctx, userID, second)
	require.NoError(t, err)
	require.Len(t, resp.Experience, 2)
	// Newest entry first.
	assert.Equal(t, "Lead", resp.Experience[0].Title)

	resp, err = s.DeleteExperience(ctx, userID, resp.Experience[0].ID.Hex())
	require.NoError(t, err)
	require.Len(t, resp.Experience, 1)
	assert.Equal(t, "Engineer", resp.Experience[0].Title)

	// Malformed and unmatched ids leave the profile unchanged.
	resp, err = s.DeleteExperience(ctx, userID, "not-a-hex-id")
	require.NoError(t, err)
	assert.Len(t, resp.Experience, 1)
	resp, err = s.DeleteExperience(ctx, userID, primitive.NewObjectID().Hex())
	require.NoError(t, err)
	assert.Len(t, resp.Experience, 1)
}

func TestAddEducationRequiresProfile(t *testing.T) {
	s := testService(t)
	userID := seedUser(t, s, "Ada")

	req := AddEducationRequest{School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: time.Date(2014, 9, 1, 0, 0, 0, 0, time.UTC)}
	_, err := s.AddEducation(context.Background(), userID, req)
	require.Error(t, err)
	appErr, ok := apperror.FromError(err)
	require.True(t, ok)
	assert.Equal(t, "There is no profile for this user", appErr.Message)
}

func TestDeleteAccountCascades(t *testing.T) {
	s := testService(t)
	ctx := context.Background()
	userID := seedUser(t, s, "Ada")
	uid, err := primitive.ObjectIDFromHex(userID)
	require.NoError(t, err)

	_, err = s.Upsert(ctx, userID, basicProfile())
	require.NoError(t, err)
	_, err = s.posts.InsertOne(ctx, bson.M{"user": uid, "text": "bye", "date": time.Now().UTC()})
	require.NoError(t, err)

	require.NoError(t, s.DeleteAccount(ctx, userID))

	for _, coll := range []*mongo.Collection{s.users, s.profiles} {
		count, err := coll.CountDocuments(ctx, bson.M{})
		require.NoError(t, err)
		assert.EqualValues(t, 0, count)
	}
	count, err := s.posts.CountDocuments(ctx, bson.M{"user": uid})
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}
