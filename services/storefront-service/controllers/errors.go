package controllers

import "errors"

var (
	errInvalidRange  = errors.New("min_price must not exceed max_price")
	errNegativePrice = errors.New("price bounds must not be negative")
)
