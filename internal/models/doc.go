// Package models defines domain entities and persistence interfaces for the EcoTube conversion service.
//
// The package contains two categories of types:
//
// 1. Request/response objects for the conversion core:
//   - [ConvertRequest] : A validated URL + quality pair, immutable once accepted
//   - [Quality] : The MP3 bitrate enum with its downloader token mapping
//   - [VideoInfo] : Title and duration returned by the metadata probe
//
// 2. Persistent entities: database-backed models with full lifecycle management
//   - [Message] : Contact-form submissions
//
// Persistent entities implement the Model interface providing ID generation, timestamps, validation, and soft delete support.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
