// Package services contains domain services: logic that spans an aggregate
// and a presentation contract without belonging to either. The tracking
// projector turns an order into the wire payloads pushed to live tracking
// subscribers and served by the tracking snapshot query.
package services
