// Package mongo connects to MongoDB with go.mongodb.org/mongo-driver/v2.
//
// Config is read from MONGODB_* environment variables. New retries the
// initial connection and ping, NewWithDatabase returns the configured
// database handle, and Healthcheck returns a readiness probe.
//
//	db, err := mongo.NewWithDatabase(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	repo := store.NewMongo(db)
package mongo
