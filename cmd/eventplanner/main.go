// Command eventplanner runs the event planner web front end or one of its
// backing stores.
//
//	eventplanner serve web|users|events|invitations|calendars
//	eventplanner migrate [users events invitations calendar_shares]
//
// @title Event planner
// @version 1.0
// @description Event planning front end and its users, events, invitations and calendar share stores.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Session token as "Bearer <token>". The planner_session cookie is accepted too.
package main

import (
	"context"
	"log"
	"os"

	"eventplanner/internal/app"
)

func main() {
	ctx := context.Background()
	if err := app.Run(ctx, os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
