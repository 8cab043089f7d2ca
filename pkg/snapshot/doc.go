// Package snapshot stores rendered HTML under short names.
//
// DiskStore writes one file per snapshot into a directory. S3Store writes one
// object per snapshot into a bucket, and RedisStore keeps snapshots as string
// keys with an optional expiry. All of them accept names made of letters,
// digits, dots, dashes and underscores.
package snapshot
