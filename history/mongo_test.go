package history

import (
	"context"
	"testing"

	"github.com/raushankrgupta/virtual-closet/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const ns = "closet.history"

func updateResponse(matched int) bson.D {
	return mtest.CreateSuccessResponse(
		bson.E{Key: "n", Value: matched},
		bson.E{Key: "nModified", Value: matched},
	)
}

func commandNames(mt *mtest.T) []string {
	var names []string
	for {
		evt := mt.GetStartedEvent()
		if evt == nil {
			return names
		}
		names = append(names, evt.CommandName)
	}
}

func notArrayResponse() bson.D {
	return mtest.CreateWriteErrorsResponse(mtest.WriteError{
		Index:   0,
		Code:    2,
		Message: "The field 'history' must be an array but is of type string in document {_id: \"u1\"}",
	})
}

// startedCommands returns each started command as extended JSON
func startedCommands(mt *mtest.T) []string {
	var cmds []string
	for {
		evt := mt.GetStartedEvent()
		if evt == nil {
			return cmds
		}
		cmds = append(cmds, evt.Command.String())
	}
}

func TestMongoStore_AppendOrCreate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	entry := models.HistoryEntry{Prompt: "p", Text: "t", CreatedAt: 1700000000000}

	mt.Run("existing document is updated", func(mt *mtest.T) {
		mt.AddMockResponses(updateResponse(1))

		res, err := NewMongoStore(mt.Coll).AppendOrCreate(context.Background(), "u1", entry)

		require.NoError(mt, err)
		assert.Equal(mt, Updated, res.Outcome)
		assert.Equal(mt, []string{"update"}, commandNames(mt))
	})

	mt.Run("missing document is created", func(mt *mtest.T) {
		mt.AddMockResponses(updateResponse(0), mtest.CreateSuccessResponse())

		res, err := NewMongoStore(mt.Coll).AppendOrCreate(context.Background(), "u1", entry)

		require.NoError(mt, err)
		assert.Equal(mt, Created, res.Outcome)
		assert.Empty(mt, res.Reason)
		assert.Equal(mt, []string{"update", "insert"}, commandNames(mt))
	})

	mt.Run("lost create race retries the push", func(mt *mtest.T) {
		mt.AddMockResponses(
			updateResponse(0),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key error"}),
			updateResponse(1),
		)

		res, err := NewMongoStore(mt.Coll).AppendOrCreate(context.Background(), "u1", entry)

		require.NoError(mt, err)
		assert.Equal(mt, Updated, res.Outcome)
		assert.Equal(mt, []string{"update", "insert", "update"}, commandNames(mt))
	})

	mt.Run("non-array history field is replaced", func(mt *mtest.T) {
		mt.AddMockResponses(
			notArrayResponse(),
			updateResponse(1),
		)

		res, err := NewMongoStore(mt.Coll).AppendOrCreate(context.Background(), "u1", entry)

		require.NoError(mt, err)
		assert.Equal(mt, Updated, res.Outcome)
		commands := startedCommands(mt)
		require.Len(mt, commands, 2)
		assert.Contains(mt, commands[0], "$push")
		assert.Contains(mt, commands[1], "$set")
		assert.Contains(mt, commands[1], "$not")
	})

	mt.Run("field repaired concurrently retries the push", func(mt *mtest.T) {
		mt.AddMockResponses(
			notArrayResponse(),
			updateResponse(0),
			updateResponse(1),
		)

		res, err := NewMongoStore(mt.Coll).AppendOrCreate(context.Background(), "u1", entry)

		require.NoError(mt, err)
		assert.Equal(mt, Updated, res.Outcome)
		assert.Equal(mt, []string{"update", "update", "update"}, commandNames(mt))
	})

	mt.Run("update failure is reported", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "boom",
		}))

		res, err := NewMongoStore(mt.Coll).AppendOrCreate(context.Background(), "u1", entry)

		require.Error(mt, err)
		assert.Equal(mt, Failed, res.Outcome)
		assert.Contains(mt, res.Reason, "boom")
	})

	mt.Run("missing user id", func(mt *mtest.T) {
		res, err := NewMongoStore(mt.Coll).AppendOrCreate(context.Background(), "", entry)

		assert.ErrorIs(mt, err, ErrMissingUser)
		assert.Equal(mt, Failed, res.Outcome)
	})
}

func TestMongoStore_Read(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("no document reads as empty", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		got, err := NewMongoStore(mt.Coll).Read(context.Background(), "u1")

		require.NoError(mt, err)
		assert.Empty(mt, got)
		assert.NotNil(mt, got)
	})

	mt.Run("non-array history reads as empty", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "u1"},
			{Key: "history", Value: "not-a-list"},
		}))

		got, err := NewMongoStore(mt.Coll).Read(context.Background(), "u1")

		require.NoError(mt, err)
		assert.Empty(mt, got)
	})

	mt.Run("entries keep append order", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "u1"},
			{Key: "history", Value: bson.A{
				bson.D{{Key: "prompt", Value: "p"}, {Key: "text", Value: "t"}, {Key: "createdAt", Value: int64(2)}},
				bson.D{{Key: "prompt", Value: "p2"}, {Key: "text", Value: "t2"}, {Key: "createdAt", Value: int64(1)}},
				"junk",
			}},
		}))

		got, err := NewMongoStore(mt.Coll).Read(context.Background(), "u1")

		require.NoError(mt, err)
		assert.Equal(mt, []models.HistoryEntry{
			{Prompt: "p", Text: "t", CreatedAt: 2},
			{Prompt: "p2", Text: "t2", CreatedAt: 1},
		}, got)
	})

	mt.Run("server error is returned", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 13, Name: "Unauthorized", Message: "denied"}))

		_, err := NewMongoStore(mt.Coll).Read(context.Background(), "u1")

		assert.Error(mt, err)
	})
}
