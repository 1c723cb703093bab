/* Copyright (c) 2013 The s3cache AUTHORS. All rights reserved.
 * Copyright (c) 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 *
 * Package s3store keeps tournament documents in an S3 (or S3 compatible)
 * bucket. The same bucket also backs an httpcache.Cache so that documents
 * fetched over http by other instances are cached next to the archive.
 */
package s3store

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/charmbracelet/log"
	"github.com/mikeb26/enginetourney/archive"
)

const (
	docSuffix   = ".json"
	cachePrefix = "s3cache"
)

// ObjectClient is the subset of *s3.Client used by Store.
type ObjectClient interface {
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput,
		optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput,
		optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput,
		optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput,
		optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input,
		optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

var _ ObjectClient = (*s3.Client)(nil)

// Store objects store and retrieve tournament documents using Amazon S3.
type Store struct {
	// Config is the Amazon S3 configuration.
	Config aws.Config

	// Client is the client the store uses when interacting with S3. By
	// default this is initialized in Init(), but callers can optionally
	// override it with their own client.
	Client ObjectClient

	bucketName string

	// prefix is prepended to every document key, e.g. "tournaments"
	prefix string

	// gzip indicates whether objects should be gzipped when written and
	// gunzipped when read. If true, object keys get a ".gz" suffix.
	gzip bool

	logErrors bool

	// optional S3 compatible endpoint with static credentials
	endpoint        string
	accessKeyID     string
	secretAccessKey string

	// The context to specify when initiating s3 requests on behalf of
	// httpcache, whose interface carries no context
	ctx context.Context
}

var _ archive.DocumentStore = (*Store)(nil)
var _ archive.Lister = (*Store)(nil)

// New returns a new Store with underlying storage in the specified bucket.
// Callers should take care to invoke Init() on the returned Store before
// use.
func New(ctxIn context.Context, bucketNameIn string, prefixIn string,
	gzipIn bool, logErrorsIn bool) *Store {

	return &Store{
		ctx:        ctxIn,
		bucketName: bucketNameIn,
		prefix:     strings.Trim(prefixIn, "/"),
		gzip:       gzipIn,
		logErrors:  logErrorsIn,
	}
}

// WithEndpoint points the store at an S3 compatible service (R2, MinIO,
// ...) instead of AWS. It must be called before Init().
func (s *Store) WithEndpoint(endpoint string, accessKeyID string,
	secretAccessKey string) *Store {

	s.endpoint = endpoint
	s.accessKeyID = accessKeyID
	s.secretAccessKey = secretAccessKey

	return s
}

// Init loads the AWS configuration and verifies access to the bucket.
//
// The default configuration sources are:
// * Environment Variables (e.g. AWS_ACCESS_KEY_ID and AWS_SECRET_KEY)
// * Shared Configuration and Shared Credentials files.
// Static credentials given to WithEndpoint take precedence.
func (s *Store) Init() error {
	var opts []func(*config.LoadOptions) error
	if s.accessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s.accessKeyID,
				s.secretAccessKey, "")))
	}
	if s.endpoint != "" {
		opts = append(opts, config.WithRegion("auto"))
	}

	var err error
	s.Config, err = config.LoadDefaultConfig(s.ctx, opts...)
	if err != nil {
		return fmt.Errorf("s3store.init: failed to load AWS config: %w", err)
	}
	s.Client = s3.NewFromConfig(s.Config, func(o *s3.Options) {
		if s.endpoint != "" {
			o.BaseEndpoint = aws.String(s.endpoint)
			o.UsePathStyle = true
		}
	})

	// Permission check: verify bucket exists and is accessible
	if _, err = s.Client.HeadBucket(s.ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucketName),
	}); err != nil {
		return fmt.Errorf("s3store.init: head bucket failed for %s: %w", s.bucketName, err)
	}

	// Permission check: verify ability to list objects (read/list permissions)
	if _, err = s.Client.ListObjectsV2(s.ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucketName),
		MaxKeys: aws.Int32(1),
	}); err != nil {
		return fmt.Errorf("s3store.init: list objects failed for %s: %w", s.bucketName, err)
	}

	return nil
}

func (s *Store) Bucket() string {
	return s.bucketName
}

func isNoSuchKey(err error) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey"
}

func (s *Store) getObject(ctx context.Context, key string) ([]byte, error) {
	resp, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	rdr := resp.Body
	if s.gzip {
		rdr, err = gzip.NewReader(rdr)
		if err != nil {
			return nil, fmt.Errorf("failed to open compressed object: %w", err)
		}
		defer rdr.Close()
	}

	return io.ReadAll(rdr)
}

func (s *Store) putObject(ctx context.Context, key string, data []byte,
	contentType string) error {

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if s.gzip {
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		if _, err := gw.Write(data); err != nil {
			return fmt.Errorf("failed to gzip data: %w", err)
		}
		if err := gw.Close(); err != nil {
			return fmt.Errorf("failed to close gzip writer: %w", err)
		}
		input.Body = bytes.NewReader(buf.Bytes())
		input.ContentEncoding = aws.String("gzip")
	}

	_, err := s.Client.PutObject(ctx, input)
	return err
}

func (s *Store) documentKey(name string) string {
	objKey := name + docSuffix
	if s.prefix != "" {
		objKey = path.Join(s.prefix, objKey)
	}
	if s.gzip {
		objKey += ".gz"
	}

	return objKey
}

// Load returns the named document. A missing document yields an error
// wrapping archive.ErrNotFound.
func (s *Store) Load(ctx context.Context, name string) ([]byte, error) {
	key := s.documentKey(name)
	data, err := s.getObject(ctx, key)
	if err != nil {
		if isNoSuchKey(err) {
			return nil, fmt.Errorf("%v: %w", name, archive.ErrNotFound)
		}
		if s.logErrors {
			log.Warn("s3store.load: failed to get object", "bucket", s.bucketName,
				"key", key, "error", err)
		}
		return nil, fmt.Errorf("s3store.load: %v: %w", name, err)
	}

	return data, nil
}

// Save stores data as the named document, replacing any prior version.
func (s *Store) Save(ctx context.Context, name string, data []byte) error {
	key := s.documentKey(name)
	err := s.putObject(ctx, key, data, "application/json")
	if err != nil {
		if s.logErrors {
			log.Warn("s3store.save: put failed", "bucket", s.bucketName,
				"key", key, "error", err)
		}
		return fmt.Errorf("s3store.save: %v: %w", name, err)
	}

	return nil
}

// List returns the names of the stored documents in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	listPrefix := ""
	if s.prefix != "" {
		listPrefix = s.prefix + "/"
	}
	suffix := docSuffix
	if s.gzip {
		suffix += ".gz"
	}

	var names []string
	pager := s3.NewListObjectsV2Paginator(s.Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucketName),
		Prefix: aws.String(listPrefix),
	})
	for pager.HasMorePages() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("s3store.list: %w", err)
		}
		for _, obj := range page.Contents {
			key := strings.TrimPrefix(aws.ToString(obj.Key), listPrefix)
			name, ok := strings.CutSuffix(key, suffix)
			// skip http cache entries and anything in nested "directories"
			if !ok || name == "" || strings.Contains(name, "/") {
				continue
			}
			names = append(names, name)
		}
	}
	sort.Strings(names)

	return names, nil
}

// Get, Set and Delete implement httpcache.Cache.

func (s *Store) Get(key string) ([]byte, bool) {
	objKey := s.cacheKeyToObjectKey(key)
	data, err := s.getObject(s.ctx, objKey)
	if err != nil {
		// no such key just indicates a cache miss
		if s.logErrors && !isNoSuchKey(err) {
			log.Warn("s3store.get: failed to get object", "bucket", s.bucketName,
				"key", objKey, "error", err)
		}
		return []byte{}, false
	}

	return data, true
}

// Set stores the provided data in the cache under the given key.
func (s *Store) Set(key string, data []byte) {
	objKey := s.cacheKeyToObjectKey(key)
	err := s.putObject(s.ctx, objKey, data, "")
	if err != nil && s.logErrors {
		log.Warn("s3store.set: put failed", "bucket", s.bucketName, "key",
			objKey, "error", err)
	}
}

func (s *Store) Delete(key string) {
	_, err := s.Client.DeleteObject(s.ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.cacheKeyToObjectKey(key)),
	})
	if err != nil && s.logErrors {
		log.Warn("s3store.delete: delete failed", "error", err)
	}
}

func (s *Store) cacheKeyToObjectKey(key string) string {
	h := md5.New()
	io.WriteString(h, key)
	objKey := fmt.Sprintf("/%v/%v", cachePrefix, hex.EncodeToString(h.Sum(nil)))
	if s.prefix != "" {
		objKey = "/" + s.prefix + objKey
	}
	if s.gzip {
		objKey += ".gz"
	}

	return objKey
}
